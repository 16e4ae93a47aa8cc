package qb

import "errors"

var (
	ErrUnsupportedExpression   = errors.New("qb: unsupported expression")
	ErrUnsupportedOperator     = errors.New("qb: unsupported operator")
	ErrInvalidColumnExpression = errors.New("qb: could not extract column name from expression")
)
