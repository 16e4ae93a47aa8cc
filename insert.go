package sqlbuilder

import (
	"context"
	"database/sql"
	"strings"

	"github.com/maxshaw/sqlbuilder/qb"
)

// InsertBuilder assembles a single-row INSERT. Columns are never qualified.
type InsertBuilder[T any] struct {
	*draft

	model *T
	sets  setList
}

// Insert starts an INSERT. model feeds AutoMap and may be nil.
func Insert[T any](model *T) *InsertBuilder[T] {
	return &InsertBuilder[T]{draft: newDraft(Of[T]()), model: model}
}

func InsertTable(name string) *InsertBuilder[any] {
	return &InsertBuilder[any]{draft: newDraft(Table(name))}
}

func (b *InsertBuilder[T]) Set(col string, value any) *InsertBuilder[T] {
	b.sets.set(b.params, col, value)
	return b
}

func (b *InsertBuilder[T]) SetExpr(col qb.Expr, value any) *InsertBuilder[T] {
	b.setExpr(&b.sets, col, value)
	return b
}

func (b *InsertBuilder[T]) AutoMap() *InsertBuilder[T] {
	if b.model != nil {
		b.autoMap(&b.sets, b.model)
	}
	return b
}

func (b *InsertBuilder[T]) ToSQL() (string, map[string]any, error) {
	if b.err != nil {
		return "", nil, &ValidationError{Statement: "INSERT", Msg: "invalid value", Underlying: b.err}
	}
	if b.sets.empty() {
		return "", nil, &ValidationError{Statement: "INSERT", Msg: "no values to insert", Underlying: ErrMissingValues}
	}

	var sb strings.Builder

	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.entity.Table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(b.sets.cols, ", "))
	sb.WriteString(") VALUES (")
	for i, p := range b.sets.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(qb.Placeholder(p))
	}
	sb.WriteString(")")

	return sb.String(), b.params.Map(), nil
}

func (b *InsertBuilder[T]) Exec(ctx context.Context, ex Executor) (sql.Result, error) {
	query, params, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return exec(ctx, ex, query, params)
}
