package sqlbuilder

import (
	"errors"

	"github.com/maxshaw/sqlbuilder/qb"
)

var (
	ErrMissingSetClause    = errors.New("sqlbuilder: no SET clause defined")
	ErrMissingKeyCondition = errors.New("sqlbuilder: WHERE clause must include a condition on the key column")
	ErrMissingValues       = errors.New("sqlbuilder: no values to insert")

	ErrUnsupportedExpression   = qb.ErrUnsupportedExpression
	ErrUnsupportedOperator     = qb.ErrUnsupportedOperator
	ErrInvalidColumnExpression = qb.ErrInvalidColumnExpression
)

// ValidationError reports a statement that failed a render-time check.
type ValidationError struct {
	Statement, Field, Msg string
	Underlying            error
}

func (e *ValidationError) Error() string {
	msg := "sqlbuilder: " + e.Statement
	if e.Field != "" {
		msg += " " + e.Field
	}
	return msg + ": " + e.Msg
}

func (e *ValidationError) Unwrap() error {
	return e.Underlying
}
