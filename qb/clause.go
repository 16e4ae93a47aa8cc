package qb

import "strings"

// Clause is one rendered condition and the connector that joins it to the
// previous one. A clause with a Group renders as a parenthesized block.
type Clause struct {
	Connector Connector
	Term      Term
	Param     int
	Group     []Clause
}

func (c Clause) render(sb *strings.Builder, qualify bool) {
	if c.Group != nil {
		sb.WriteString("(")
		renderList(sb, c.Group, qualify)
		sb.WriteString(")")
		return
	}

	if qualify {
		sb.WriteString(Qualify(c.Term.Alias, c.Term.Column))
	} else {
		sb.WriteString(c.Term.Column)
	}
	sb.WriteString(" ")
	sb.WriteString(c.Term.Op)
	sb.WriteString(" ")
	sb.WriteString(Placeholder(c.Param))
}

func renderList(sb *strings.Builder, list []Clause, qualify bool) {
	for i, c := range list {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(string(c.Connector))
			sb.WriteString(" ")
		}
		c.render(sb, qualify)
	}
}

// Clauses accumulates conditions in order. Values go through the shared Params.
type Clauses struct {
	params *Params
	list   []Clause
}

func NewClauses(params *Params) *Clauses {
	return &Clauses{params: params}
}

func (c *Clauses) Params() *Params {
	return c.params
}

func (c *Clauses) Len() int {
	return len(c.list)
}

func (c *Clauses) List() []Clause {
	return c.list
}

// Add binds term's value and appends the clause. It returns the placeholder.
func (c *Clauses) Add(conn Connector, term Term) string {
	i := c.params.Bind(term.Value)
	c.list = append(c.list, Clause{Connector: conn, Term: term, Param: i})
	return Placeholder(i)
}

// Scratch returns an empty accumulator whose counter continues from c.
func (c *Clauses) Scratch() *Clauses {
	return NewClauses(NewParams(c.params.Next()))
}

// Merge appends s as one parenthesized AND group and takes over its bindings.
// An empty scratch leaves c untouched.
func (c *Clauses) Merge(s *Clauses) {
	if len(s.list) == 0 {
		return
	}
	c.list = append(c.list, Clause{Connector: And, Group: s.list})
	c.params.Merge(s.params)
}

func (c *Clauses) Group(fn func(*Clauses)) *Clauses {
	s := c.Scratch()
	fn(s)
	c.Merge(s)
	return c
}

// Shift copies the clauses onto params, moving every placeholder by offset.
func (c *Clauses) Shift(offset int, params *Params) *Clauses {
	return &Clauses{params: params, list: shiftList(c.list, offset)}
}

func shiftList(list []Clause, offset int) []Clause {
	if list == nil {
		return nil
	}
	out := make([]Clause, len(list))
	for i, cl := range list {
		cl.Param += offset
		if cl.Group != nil {
			cl.Group = shiftList(cl.Group, offset)
		}
		out[i] = cl
	}
	return out
}

func (c *Clauses) Render(qualify bool) string {
	var sb strings.Builder
	renderList(&sb, c.list, qualify)
	return sb.String()
}
