package qb

import (
	"sort"
	"strconv"
)

const placeholderPrefix = "@p"

func Placeholder(i int) string {
	return placeholderPrefix + strconv.Itoa(i)
}

// Params issues placeholder indexes and owns the values bound to them.
type Params struct {
	next   int
	values map[int]any
}

func NewParams(start int) *Params {
	return &Params{next: start, values: make(map[int]any)}
}

// Next is the index the next Bind will return.
func (p *Params) Next() int {
	return p.next
}

func (p *Params) Len() int {
	return len(p.values)
}

func (p *Params) Bind(v any) int {
	i := p.next
	p.values[i] = v
	p.next++
	return i
}

// Set rebinds an index previously returned by Bind.
func (p *Params) Set(i int, v any) {
	p.values[i] = v
}

func (p *Params) Value(i int) (any, bool) {
	v, ok := p.values[i]
	return v, ok
}

// Merge folds o into p. The counter moves to whichever is further along.
func (p *Params) Merge(o *Params) {
	for i, v := range o.values {
		p.values[i] = v
	}
	if o.next > p.next {
		p.next = o.next
	}
}

// Shift returns a copy with every index moved up by offset.
func (p *Params) Shift(offset int) *Params {
	out := NewParams(p.next + offset)
	for i, v := range p.values {
		out.values[i+offset] = v
	}
	return out
}

func (p *Params) Indexes() []int {
	out := make([]int, 0, len(p.values))
	for i := range p.values {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Map returns the bindings keyed by placeholder name.
func (p *Params) Map() map[string]any {
	out := make(map[string]any, len(p.values))
	for i, v := range p.values {
		out[Placeholder(i)] = v
	}
	return out
}
