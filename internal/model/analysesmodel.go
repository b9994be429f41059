package model

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/builder"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/stringx"
)

var (
	analysesFieldNames          = builder.RawFieldNames(&Analysis{}, true)
	analysesRows                = strings.Join(analysesFieldNames, ",")
	analysesRowsExpectAutoSet   = strings.Join(stringx.Remove(analysesFieldNames, "id", "created_at"), ",")
	analysesRowsWithPlaceHolder = "$1,$2,$3,$4,$5,$6,$7"
)

// Analysis is one persisted analysis run.
type Analysis struct {
	Id           int64          `db:"id"`
	CreatedAt    time.Time      `db:"created_at"`
	CurrentPrice float64        `db:"current_price"`
	HourlyChange float64        `db:"hourly_change_pct"`
	DailyChange  float64        `db:"daily_change_pct"`
	High24h      float64        `db:"high_24h"`
	Low24h       float64        `db:"low_24h"`
	Summary      string         `db:"summary"`
	Model        sql.NullString `db:"model"`
}

type (
	// AnalysesModel is an interface to be customized, add more methods here,
	// and implement the added methods in customAnalysesModel.
	AnalysesModel interface {
		Insert(ctx context.Context, data *Analysis) (int64, error)
		FindOne(ctx context.Context, id int64) (*Analysis, error)
		FindLatest(ctx context.Context) (*Analysis, error)
	}

	defaultAnalysesModel struct {
		conn  sqlx.SqlConn
		table string
	}
)

// NewAnalysesModel returns a model for the analyses table.
func NewAnalysesModel(conn sqlx.SqlConn) AnalysesModel {
	return &defaultAnalysesModel{
		conn:  conn,
		table: `"public"."analyses"`,
	}
}

func (m *defaultAnalysesModel) Insert(ctx context.Context, data *Analysis) (int64, error) {
	query := fmt.Sprintf("insert into %s (%s) values (%s) returning id",
		m.table, analysesRowsExpectAutoSet, analysesRowsWithPlaceHolder)
	var id int64
	err := m.conn.QueryRowCtx(ctx, &id, query,
		data.CurrentPrice, data.HourlyChange, data.DailyChange,
		data.High24h, data.Low24h, data.Summary, data.Model)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (m *defaultAnalysesModel) FindOne(ctx context.Context, id int64) (*Analysis, error) {
	query := fmt.Sprintf("select %s from %s where id = $1 limit 1", analysesRows, m.table)
	var resp Analysis
	err := m.conn.QueryRowCtx(ctx, &resp, query, id)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultAnalysesModel) FindLatest(ctx context.Context) (*Analysis, error) {
	query := fmt.Sprintf("select %s from %s order by created_at desc, id desc limit 1", analysesRows, m.table)
	var resp Analysis
	err := m.conn.QueryRowCtx(ctx, &resp, query)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}
