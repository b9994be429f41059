package model

import "github.com/zeromicro/go-zero/core/stores/sqlx"

// ErrNotFound is returned when a query matches no rows.
var ErrNotFound = sqlx.ErrNotFound
