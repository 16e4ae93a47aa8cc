package sqlbuilder

import (
	"context"
	"database/sql"
	"strings"

	"github.com/maxshaw/sqlbuilder/qb"
)

// DeleteBuilder assembles a DELETE against T's table.
type DeleteBuilder[T any] struct {
	*draft
}

func Delete[T any]() *DeleteBuilder[T] {
	return &DeleteBuilder[T]{draft: newDraft(Of[T]())}
}

func DeleteTable(name string) *DeleteBuilder[any] {
	return &DeleteBuilder[any]{draft: newDraft(Table(name))}
}

func (b *DeleteBuilder[T]) Where(p qb.Predicate) *DeleteBuilder[T] {
	b.apply(func(c *Cond) { c.Where(p) })
	return b
}

func (b *DeleteBuilder[T]) OrWhere(p qb.Predicate) *DeleteBuilder[T] {
	b.apply(func(c *Cond) { c.OrWhere(p) })
	return b
}

func (b *DeleteBuilder[T]) WhereOn(e Entity, p qb.Predicate) *DeleteBuilder[T] {
	b.apply(func(c *Cond) { c.WhereOn(e, p) })
	return b
}

func (b *DeleteBuilder[T]) OrWhereOn(e Entity, p qb.Predicate) *DeleteBuilder[T] {
	b.apply(func(c *Cond) { c.OrWhereOn(e, p) })
	return b
}

func (b *DeleteBuilder[T]) WhereRaw(alias, column, op string, value any) *DeleteBuilder[T] {
	b.apply(func(c *Cond) { c.WhereRaw(alias, column, op, value) })
	return b
}

func (b *DeleteBuilder[T]) OrWhereRaw(alias, column, op string, value any) *DeleteBuilder[T] {
	b.apply(func(c *Cond) { c.OrWhereRaw(alias, column, op, value) })
	return b
}

func (b *DeleteBuilder[T]) WhereGroup(fn func(*Cond)) *DeleteBuilder[T] {
	b.apply(func(c *Cond) { c.WhereGroup(fn) })
	return b
}

func (b *DeleteBuilder[T]) Join(target Entity, leftCol, rightCol string) *DeleteBuilder[T] {
	b.addJoin(JoinInner, b.entity, target, leftCol, rightCol)
	return b
}

func (b *DeleteBuilder[T]) LeftJoin(target Entity, leftCol, rightCol string) *DeleteBuilder[T] {
	b.addJoin(JoinLeft, b.entity, target, leftCol, rightCol)
	return b
}

func (b *DeleteBuilder[T]) RightJoin(target Entity, leftCol, rightCol string) *DeleteBuilder[T] {
	b.addJoin(JoinRight, b.entity, target, leftCol, rightCol)
	return b
}

func (b *DeleteBuilder[T]) JoinFrom(left, target Entity, leftCol, rightCol string) *DeleteBuilder[T] {
	b.addJoin(JoinInner, left, target, leftCol, rightCol)
	return b
}

func (b *DeleteBuilder[T]) LeftJoinFrom(left, target Entity, leftCol, rightCol string) *DeleteBuilder[T] {
	b.addJoin(JoinLeft, left, target, leftCol, rightCol)
	return b
}

func (b *DeleteBuilder[T]) RightJoinFrom(left, target Entity, leftCol, rightCol string) *DeleteBuilder[T] {
	b.addJoin(JoinRight, left, target, leftCol, rightCol)
	return b
}

func (b *DeleteBuilder[T]) ToSQL() (string, map[string]any, error) {
	return b.ToSQLKey(DefaultKeyColumn)
}

// ToSQLKey renders the statement, refusing to do so unless WHERE mentions
// key. An empty key is refused too.
func (b *DeleteBuilder[T]) ToSQLKey(key string) (string, map[string]any, error) {
	if b.err != nil {
		return "", nil, &ValidationError{Statement: "DELETE", Msg: "invalid condition", Underlying: b.err}
	}

	qualify := b.qualified()
	where := b.where.Render(qualify)
	if err := guardKey("DELETE", where, key); err != nil {
		return "", nil, err
	}

	var sb strings.Builder

	sb.WriteString("DELETE FROM ")
	sb.WriteString(b.entity.Table)
	if qualify {
		sb.WriteString(" AS ")
		sb.WriteString(b.alias())
		renderJoins(&sb, b.joins)
	}

	sb.WriteString(" WHERE ")
	sb.WriteString(where)

	return sb.String(), b.params.Map(), nil
}

func (b *DeleteBuilder[T]) Exec(ctx context.Context, ex Executor) (sql.Result, error) {
	query, params, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return exec(ctx, ex, query, params)
}
