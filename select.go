package sqlbuilder

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/maxshaw/sqlbuilder/qb"
)

const (
	countAlias   = "TotalElements"
	countedAlias = "counted"
)

type unionPart[T any] struct {
	all bool
	sel *SelectBuilder[T]
}

// SelectBuilder assembles a SELECT against T's table.
type SelectBuilder[T any] struct {
	*draft

	cols     []string
	counting bool
	distinct bool

	group  []string
	having *qb.Clauses
	order  string

	limit, offset int

	unions []unionPart[T]
}

func Select[T any]() *SelectBuilder[T] {
	return newSelect[T](Of[T]())
}

// SelectTable starts a SELECT against a table with no model.
func SelectTable(name string) *SelectBuilder[any] {
	return newSelect[any](Table(name))
}

func newSelect[T any](e Entity) *SelectBuilder[T] {
	d := newDraft(e)
	return &SelectBuilder[T]{
		draft:  d,
		having: qb.NewClauses(d.params),
		offset: -1,
	}
}

// Select adds columns of the statement's entity.
func (b *SelectBuilder[T]) Select(cols ...string) *SelectBuilder[T] {
	return b.SelectOn(b.entity, cols...)
}

// SelectOn adds columns of a joined entity.
func (b *SelectBuilder[T]) SelectOn(e Entity, cols ...string) *SelectBuilder[T] {
	alias := b.aliasOf(e)
	b.cols = append(b.cols, lo.Map(cols, func(col string, _ int) string {
		return qb.Qualify(alias, col)
	})...)
	return b
}

func (b *SelectBuilder[T]) SelectAll() *SelectBuilder[T] {
	return b.SelectAllOf(b.entity)
}

// SelectAllOf adds every column of e's model.
func (b *SelectBuilder[T]) SelectAllOf(e Entity) *SelectBuilder[T] {
	b.cols = append(b.cols, b.allColumns(e)...)
	return b
}

// SelectRaw replaces the projection list with raw SQL.
func (b *SelectBuilder[T]) SelectRaw(sql string) *SelectBuilder[T] {
	b.cols = []string{sql}
	b.counting = false
	return b
}

// Count replaces the projection list with COUNT(col) AS TotalElements.
// col defaults to *.
func (b *SelectBuilder[T]) Count(col ...string) *SelectBuilder[T] {
	expr := "*"
	if len(col) > 0 && col[0] != "" && col[0] != "*" {
		expr = qb.Qualify(b.alias(), col[0])
	}
	b.cols = []string{"COUNT(" + expr + ") AS " + countAlias}
	b.counting = true
	return b
}

// Aggregate adds fn(col) AS as, e.g. Aggregate("SUM", "Total", "Revenue").
func (b *SelectBuilder[T]) Aggregate(fn, col, as string) *SelectBuilder[T] {
	proj := fn + "(" + qb.Qualify(b.alias(), col) + ")"
	if as != "" {
		proj += " AS " + as
	}
	b.cols = append(b.cols, proj)
	return b
}

func (b *SelectBuilder[T]) Distinct() *SelectBuilder[T] {
	b.distinct = true
	return b
}

func (b *SelectBuilder[T]) Where(p qb.Predicate) *SelectBuilder[T] {
	b.apply(func(c *Cond) { c.Where(p) })
	return b
}

func (b *SelectBuilder[T]) OrWhere(p qb.Predicate) *SelectBuilder[T] {
	b.apply(func(c *Cond) { c.OrWhere(p) })
	return b
}

func (b *SelectBuilder[T]) WhereOn(e Entity, p qb.Predicate) *SelectBuilder[T] {
	b.apply(func(c *Cond) { c.WhereOn(e, p) })
	return b
}

func (b *SelectBuilder[T]) OrWhereOn(e Entity, p qb.Predicate) *SelectBuilder[T] {
	b.apply(func(c *Cond) { c.OrWhereOn(e, p) })
	return b
}

func (b *SelectBuilder[T]) WhereRaw(alias, column, op string, value any) *SelectBuilder[T] {
	b.apply(func(c *Cond) { c.WhereRaw(alias, column, op, value) })
	return b
}

func (b *SelectBuilder[T]) OrWhereRaw(alias, column, op string, value any) *SelectBuilder[T] {
	b.apply(func(c *Cond) { c.OrWhereRaw(alias, column, op, value) })
	return b
}

func (b *SelectBuilder[T]) WhereGroup(fn func(*Cond)) *SelectBuilder[T] {
	b.apply(func(c *Cond) { c.WhereGroup(fn) })
	return b
}

// Join adds INNER JOIN target ON self.leftCol = target.rightCol.
func (b *SelectBuilder[T]) Join(target Entity, leftCol, rightCol string) *SelectBuilder[T] {
	b.addJoin(JoinInner, b.entity, target, leftCol, rightCol)
	return b
}

func (b *SelectBuilder[T]) LeftJoin(target Entity, leftCol, rightCol string) *SelectBuilder[T] {
	b.addJoin(JoinLeft, b.entity, target, leftCol, rightCol)
	return b
}

func (b *SelectBuilder[T]) RightJoin(target Entity, leftCol, rightCol string) *SelectBuilder[T] {
	b.addJoin(JoinRight, b.entity, target, leftCol, rightCol)
	return b
}

// JoinFrom joins target against an entity introduced by an earlier join.
func (b *SelectBuilder[T]) JoinFrom(left, target Entity, leftCol, rightCol string) *SelectBuilder[T] {
	b.addJoin(JoinInner, left, target, leftCol, rightCol)
	return b
}

func (b *SelectBuilder[T]) LeftJoinFrom(left, target Entity, leftCol, rightCol string) *SelectBuilder[T] {
	b.addJoin(JoinLeft, left, target, leftCol, rightCol)
	return b
}

func (b *SelectBuilder[T]) RightJoinFrom(left, target Entity, leftCol, rightCol string) *SelectBuilder[T] {
	b.addJoin(JoinRight, left, target, leftCol, rightCol)
	return b
}

func (b *SelectBuilder[T]) GroupBy(cols ...string) *SelectBuilder[T] {
	alias := b.alias()
	b.group = append(b.group, lo.Map(cols, func(col string, _ int) string {
		return qb.Qualify(alias, col)
	})...)
	return b
}

// Having adds alias.col op value to HAVING. Conditions are joined by AND.
func (b *SelectBuilder[T]) Having(col, op string, value any) *SelectBuilder[T] {
	return b.HavingExpr(qb.Qualify(b.alias(), col), op, value)
}

// HavingExpr adds an unqualified expression such as COUNT(*) to HAVING.
func (b *SelectBuilder[T]) HavingExpr(expr, op string, value any) *SelectBuilder[T] {
	b.having.Add(qb.And, qb.Term{Column: expr, Op: op, Value: value})
	return b
}

// OrderBy replaces any earlier ordering. Ascending unless told otherwise.
func (b *SelectBuilder[T]) OrderBy(col string, sortBy ...qb.SortBy) *SelectBuilder[T] {
	return b.OrderByOn(b.entity, col, sortBy...)
}

func (b *SelectBuilder[T]) OrderByOn(e Entity, col string, sortBy ...qb.SortBy) *SelectBuilder[T] {
	if col == "" {
		b.order = ""
		return b
	}

	dir := qb.Ascend
	if len(sortBy) > 0 {
		dir = sortBy[0]
	}
	b.order = qb.Qualify(b.aliasOf(e), col) + " " + dir.String()
	return b
}

// Limit renders LIMIT n when n > 0, followed by OFFSET when given.
func (b *SelectBuilder[T]) Limit(n int, offset ...int) *SelectBuilder[T] {
	b.limit = n
	b.offset = -1
	if len(offset) > 0 {
		b.offset = offset[0]
	}
	return b
}

func (b *SelectBuilder[T]) Union(other *SelectBuilder[T]) *SelectBuilder[T] {
	return b.union(other, false)
}

func (b *SelectBuilder[T]) UnionAll(other *SelectBuilder[T]) *SelectBuilder[T] {
	return b.union(other, true)
}

// union snapshots other and moves its placeholders past ours, so later
// changes to either builder do not leak into the other.
func (b *SelectBuilder[T]) union(other *SelectBuilder[T], all bool) *SelectBuilder[T] {
	if other.err != nil {
		b.fail(other.err)
		return b
	}

	offset := b.params.Next()
	shifted := other.params.Shift(offset)
	b.unions = append(b.unions, unionPart[T]{all: all, sel: other.shift(offset, shifted)})
	b.params.Merge(shifted)
	return b
}

func (b *SelectBuilder[T]) shift(offset int, params *qb.Params) *SelectBuilder[T] {
	d := *b.draft
	d.params = params
	d.where = b.where.Shift(offset, params)
	d.joins = slices.Clone(b.joins)

	c := *b
	c.draft = &d
	c.cols = slices.Clone(b.cols)
	c.group = slices.Clone(b.group)
	c.having = b.having.Shift(offset, params)
	c.unions = lo.Map(b.unions, func(u unionPart[T], _ int) unionPart[T] {
		return unionPart[T]{all: u.all, sel: u.sel.shift(offset, params)}
	})
	return &c
}

// allColumns lists e's columns qualified by its alias, or alias.* when e has
// no model.
func (b *SelectBuilder[T]) allColumns(e Entity) []string {
	alias := b.aliasOf(e)
	cols := structColumns(e.Type)
	if len(cols) == 0 {
		return []string{alias + ".*"}
	}
	return lo.Map(cols, func(col string, _ int) string {
		return qb.Qualify(alias, col)
	})
}

func (b *SelectBuilder[T]) projection() []string {
	if len(b.cols) == 0 {
		return b.allColumns(b.entity)
	}
	return b.cols
}

func (b *SelectBuilder[T]) render(sb *strings.Builder) {
	sb.WriteString("SELECT ")
	if b.distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(strings.Join(b.projection(), ", "))

	sb.WriteString(" FROM ")
	sb.WriteString(b.entity.Table)
	sb.WriteString(" AS ")
	sb.WriteString(b.alias())

	renderJoins(sb, b.joins)

	if b.where.Len() > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(b.where.Render(true))
	}

	if len(b.group) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.group, ", "))
	}

	if b.having.Len() > 0 {
		sb.WriteString(" HAVING ")
		sb.WriteString(b.having.Render(true))
	}

	if b.order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.order)
	}

	if b.limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(b.limit))
		if b.offset > -1 {
			sb.WriteString(" OFFSET ")
			sb.WriteString(strconv.Itoa(b.offset))
		}
	}

	for _, u := range b.unions {
		if u.all {
			sb.WriteString(" UNION ALL ")
		} else {
			sb.WriteString(" UNION ")
		}
		u.sel.render(sb)
	}
}

// ToSQL renders the statement and its parameters. It may be called any
// number of times. A chained call that failed makes every render return its
// error until ClearErr is called.
func (b *SelectBuilder[T]) ToSQL() (string, map[string]any, error) {
	if b.err != nil {
		return "", nil, b.invalid()
	}

	var sb strings.Builder
	b.render(&sb)
	return sb.String(), b.params.Map(), nil
}

// ToCountSQL renders the statement for a total count over every page:
// ORDER BY, LIMIT and OFFSET are dropped and the projection list becomes
// COUNT(<first column>). Statements whose rows are not one per matched row
// (DISTINCT, GROUP BY, UNION) are counted as a derived table instead.
func (b *SelectBuilder[T]) ToCountSQL() (string, map[string]any, error) {
	if b.err != nil {
		return "", nil, b.invalid()
	}

	c := *b
	c.order = ""
	c.limit, c.offset = 0, -1

	var sb strings.Builder
	switch {
	case b.counting:
		c.render(&sb)
	case b.distinct || len(b.group) > 0 || len(b.unions) > 0:
		sb.WriteString("SELECT COUNT(*) FROM (")
		c.render(&sb)
		sb.WriteString(") AS ")
		sb.WriteString(countedAlias)
	default:
		c.cols = []string{"COUNT(" + countTarget(b.projection()) + ")"}
		c.render(&sb)
	}
	return sb.String(), b.params.Map(), nil
}

func (b *SelectBuilder[T]) invalid() error {
	return &ValidationError{Statement: "SELECT", Msg: "invalid condition", Underlying: b.err}
}

// countTarget is the first projected column without its AS suffix. A
// whole-table projection counts *.
func countTarget(proj []string) string {
	first := proj[0]
	if i := strings.LastIndex(strings.ToUpper(first), " AS "); i > 0 {
		first = first[:i]
	}
	if strings.HasSuffix(first, ".*") {
		return "*"
	}
	return first
}

// Query runs the statement and returns each row keyed by column name.
func (b *SelectBuilder[T]) Query(ctx context.Context, ex Executor) ([]map[string]any, error) {
	sql, params, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return queryMaps(ctx, ex, sql, params)
}

// Total runs the count rendering and returns the count from the first row.
func (b *SelectBuilder[T]) Total(ctx context.Context, ex Executor) (int64, error) {
	sql, params, err := b.ToCountSQL()
	if err != nil {
		return 0, err
	}

	rows, err := queryMaps(ctx, ex, sql, params)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	for _, v := range rows[0] {
		n, err := cast.ToInt64E(v)
		if err != nil {
			return 0, fmt.Errorf("sqlbuilder: reading count: %w", err)
		}
		return n, nil
	}
	return 0, nil
}
