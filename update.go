package sqlbuilder

import (
	"context"
	"database/sql"
	"strings"

	"github.com/maxshaw/sqlbuilder/qb"
)

// UpdateBuilder assembles an UPDATE against T's table.
type UpdateBuilder[T any] struct {
	*draft

	model *T
	sets  setList
}

// Update starts an UPDATE. model feeds AutoMap and may be nil.
func Update[T any](model *T) *UpdateBuilder[T] {
	return &UpdateBuilder[T]{draft: newDraft(Of[T]()), model: model}
}

func UpdateTable(name string) *UpdateBuilder[any] {
	return &UpdateBuilder[any]{draft: newDraft(Table(name))}
}

func (b *UpdateBuilder[T]) Set(col string, value any) *UpdateBuilder[T] {
	b.sets.set(b.params, col, value)
	return b
}

// SetExpr assigns through the translator: col must be a member, value may be
// any expression the translator can evaluate.
func (b *UpdateBuilder[T]) SetExpr(col qb.Expr, value any) *UpdateBuilder[T] {
	b.setExpr(&b.sets, col, value)
	return b
}

// AutoMap assigns every non-zero field of the model.
func (b *UpdateBuilder[T]) AutoMap() *UpdateBuilder[T] {
	if b.model != nil {
		b.autoMap(&b.sets, b.model)
	}
	return b
}

func (b *UpdateBuilder[T]) Where(p qb.Predicate) *UpdateBuilder[T] {
	b.apply(func(c *Cond) { c.Where(p) })
	return b
}

func (b *UpdateBuilder[T]) OrWhere(p qb.Predicate) *UpdateBuilder[T] {
	b.apply(func(c *Cond) { c.OrWhere(p) })
	return b
}

func (b *UpdateBuilder[T]) WhereOn(e Entity, p qb.Predicate) *UpdateBuilder[T] {
	b.apply(func(c *Cond) { c.WhereOn(e, p) })
	return b
}

func (b *UpdateBuilder[T]) OrWhereOn(e Entity, p qb.Predicate) *UpdateBuilder[T] {
	b.apply(func(c *Cond) { c.OrWhereOn(e, p) })
	return b
}

func (b *UpdateBuilder[T]) WhereRaw(alias, column, op string, value any) *UpdateBuilder[T] {
	b.apply(func(c *Cond) { c.WhereRaw(alias, column, op, value) })
	return b
}

func (b *UpdateBuilder[T]) OrWhereRaw(alias, column, op string, value any) *UpdateBuilder[T] {
	b.apply(func(c *Cond) { c.OrWhereRaw(alias, column, op, value) })
	return b
}

func (b *UpdateBuilder[T]) WhereGroup(fn func(*Cond)) *UpdateBuilder[T] {
	b.apply(func(c *Cond) { c.WhereGroup(fn) })
	return b
}

func (b *UpdateBuilder[T]) Join(target Entity, leftCol, rightCol string) *UpdateBuilder[T] {
	b.addJoin(JoinInner, b.entity, target, leftCol, rightCol)
	return b
}

func (b *UpdateBuilder[T]) LeftJoin(target Entity, leftCol, rightCol string) *UpdateBuilder[T] {
	b.addJoin(JoinLeft, b.entity, target, leftCol, rightCol)
	return b
}

func (b *UpdateBuilder[T]) RightJoin(target Entity, leftCol, rightCol string) *UpdateBuilder[T] {
	b.addJoin(JoinRight, b.entity, target, leftCol, rightCol)
	return b
}

func (b *UpdateBuilder[T]) JoinFrom(left, target Entity, leftCol, rightCol string) *UpdateBuilder[T] {
	b.addJoin(JoinInner, left, target, leftCol, rightCol)
	return b
}

func (b *UpdateBuilder[T]) LeftJoinFrom(left, target Entity, leftCol, rightCol string) *UpdateBuilder[T] {
	b.addJoin(JoinLeft, left, target, leftCol, rightCol)
	return b
}

func (b *UpdateBuilder[T]) RightJoinFrom(left, target Entity, leftCol, rightCol string) *UpdateBuilder[T] {
	b.addJoin(JoinRight, left, target, leftCol, rightCol)
	return b
}

func (b *UpdateBuilder[T]) ToSQL() (string, map[string]any, error) {
	return b.ToSQLKey(DefaultKeyColumn)
}

// ToSQLKey renders the statement, refusing to do so unless WHERE mentions
// key. An empty key is refused too. Errors recorded by failed chained calls
// are returned until ClearErr is called.
func (b *UpdateBuilder[T]) ToSQLKey(key string) (string, map[string]any, error) {
	if b.err != nil {
		return "", nil, &ValidationError{Statement: "UPDATE", Msg: "invalid condition", Underlying: b.err}
	}
	if b.sets.empty() {
		return "", nil, &ValidationError{Statement: "UPDATE", Msg: "no SET clause defined", Underlying: ErrMissingSetClause}
	}

	qualify := b.qualified()
	where := b.where.Render(qualify)
	if err := guardKey("UPDATE", where, key); err != nil {
		return "", nil, err
	}

	var sb strings.Builder

	sb.WriteString("UPDATE ")
	sb.WriteString(b.entity.Table)
	if qualify {
		sb.WriteString(" AS ")
		sb.WriteString(b.alias())
		renderJoins(&sb, b.joins)
	}

	sb.WriteString(" SET ")
	for i, col := range b.sets.cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		if qualify {
			col = qb.Qualify(b.alias(), col)
		}
		sb.WriteString(col)
		sb.WriteString(" = ")
		sb.WriteString(qb.Placeholder(b.sets.params[i]))
	}

	sb.WriteString(" WHERE ")
	sb.WriteString(where)

	return sb.String(), b.params.Map(), nil
}

func (b *UpdateBuilder[T]) Exec(ctx context.Context, ex Executor) (sql.Result, error) {
	query, params, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return exec(ctx, ex, query, params)
}
