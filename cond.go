package sqlbuilder

import (
	"errors"

	"github.com/maxshaw/sqlbuilder/qb"
)

// Cond is a WHERE accumulator. Builders hand one to WhereGroup callbacks;
// everything added to it renders as a single parenthesized block.
type Cond struct {
	clauses *qb.Clauses
	aliases *qb.Aliases
	alias   string

	err error
}

func (c *Cond) add(conn qb.Connector, p qb.Predicate, alias string) *Cond {
	term, err := qb.Translate(p, alias)
	if err != nil {
		c.err = errors.Join(c.err, err)
		return c
	}
	c.clauses.Add(conn, term)
	return c
}

// Where adds p against the statement's own entity, joined with AND.
func (c *Cond) Where(p qb.Predicate) *Cond {
	return c.add(qb.And, p, c.alias)
}

func (c *Cond) OrWhere(p qb.Predicate) *Cond {
	return c.add(qb.Or, p, c.alias)
}

// WhereOn adds p against a joined entity.
func (c *Cond) WhereOn(e Entity, p qb.Predicate) *Cond {
	return c.add(qb.And, p, c.aliases.Resolve(e.Name))
}

func (c *Cond) OrWhereOn(e Entity, p qb.Predicate) *Cond {
	return c.add(qb.Or, p, c.aliases.Resolve(e.Name))
}

// WhereRaw adds alias.column op value without translation. An empty alias
// means the statement's own entity.
func (c *Cond) WhereRaw(alias, column, op string, value any) *Cond {
	return c.add(qb.And, qb.Raw{Alias: alias, Column: column, Op: op, Value: value}, c.alias)
}

func (c *Cond) OrWhereRaw(alias, column, op string, value any) *Cond {
	return c.add(qb.Or, qb.Raw{Alias: alias, Column: column, Op: op, Value: value}, c.alias)
}

// WhereGroup nests fn's conditions in parentheses, joined with AND. A group
// with no conditions adds nothing.
func (c *Cond) WhereGroup(fn func(*Cond)) *Cond {
	scratch := &Cond{clauses: c.clauses.Scratch(), aliases: c.aliases, alias: c.alias}
	fn(scratch)
	if scratch.err != nil {
		c.err = errors.Join(c.err, scratch.err)
		return c
	}
	c.clauses.Merge(scratch.clauses)
	return c
}
