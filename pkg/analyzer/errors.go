package analyzer

import "errors"

// ErrInsufficientData indicates that fewer than two price points reached the
// metrics calculator. Kept as a distinct condition from the market layer's
// ErrDataUnavailable: the source owns transport problems, this guards the
// calculation precondition.
var ErrInsufficientData = errors.New("analyzer: at least two price points are required")
