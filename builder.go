package sqlbuilder

import (
	"errors"
	"reflect"

	"github.com/maxshaw/sqlbuilder/qb"
)

// Entity describes the table a statement or join targets.
type Entity struct {
	Name  string
	Table string
	Type  reflect.Type
}

// Of describes the model type T. The table is T's TableName when it
// implements Modeler, otherwise its type name.
func Of[T any]() Entity {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	e := Entity{Name: typ.Name(), Table: typ.Name(), Type: typ}
	if typ.Kind() == reflect.Interface {
		e.Type = nil
		return e
	}
	if m, ok := reflect.New(typ).Interface().(Modeler); ok {
		if name := m.TableName(); name != "" {
			e.Table = name
		}
	}
	return e
}

// Table describes a table with no model behind it.
func Table(name string) Entity {
	return Entity{Name: name, Table: name}
}

// draft is the state shared by every statement kind: the target entity,
// its aliases, the placeholder counter, joins and WHERE.
type draft struct {
	entity  Entity
	aliases *qb.Aliases
	params  *qb.Params
	where   *qb.Clauses
	joins   []join

	err error
}

func newDraft(e Entity) *draft {
	params := qb.NewParams(0)
	return &draft{
		entity:  e,
		aliases: qb.NewAliases(),
		params:  params,
		where:   qb.NewClauses(params),
	}
}

func (d *draft) alias() string {
	return d.aliases.Resolve(d.entity.Name)
}

func (d *draft) aliasOf(e Entity) string {
	return d.aliases.Resolve(e.Name)
}

func (d *draft) fail(err error) {
	d.err = errors.Join(d.err, err)
}

// Err returns the errors recorded by failed chained calls, joined.
func (d *draft) Err() error {
	return d.err
}

// ClearErr discards recorded errors. Failed calls never changed the
// statement, so it renders as it stood before them.
func (d *draft) ClearErr() {
	d.err = nil
}

func (d *draft) cond() *Cond {
	return &Cond{clauses: d.where, aliases: d.aliases, alias: d.alias()}
}

// apply runs fn against the WHERE accumulator and keeps any error it records.
func (d *draft) apply(fn func(*Cond)) {
	c := d.cond()
	fn(c)
	if c.err != nil {
		d.fail(c.err)
	}
}

func (d *draft) addJoin(kind JoinKind, left, target Entity, leftCol, rightCol string) {
	d.joins = append(d.joins, join{
		kind:      kind,
		table:     target.Table,
		alias:     d.aliasOf(target),
		leftAlias: d.aliasOf(left),
		leftCol:   leftCol,
		rightCol:  rightCol,
	})
}

// qualified reports whether columns carry aliases. Single-table UPDATE and
// DELETE render bare columns.
func (d *draft) qualified() bool {
	return len(d.joins) > 0
}

// setList holds column assignments in first-set order. Setting a column
// again rebinds its placeholder instead of adding a new one.
type setList struct {
	cols   []string
	params []int
	index  map[string]int
}

func (s *setList) set(params *qb.Params, col string, v any) {
	if i, ok := s.index[col]; ok {
		params.Set(s.params[i], v)
		return
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[col] = len(s.cols)
	s.cols = append(s.cols, col)
	s.params = append(s.params, params.Bind(v))
}

func (s *setList) empty() bool {
	return len(s.cols) == 0
}

// setExpr resolves col and value through the translator before assigning.
func (d *draft) setExpr(s *setList, col qb.Expr, value any) {
	name, err := qb.ColumnOf(col)
	if err != nil {
		d.fail(err)
		return
	}
	v, err := qb.ValueOf(qb.Lift(value))
	if err != nil {
		d.fail(err)
		return
	}
	s.set(d.params, name, v)
}

func (d *draft) autoMap(s *setList, model any) {
	pairs, err := mapModel(model)
	if err != nil {
		d.fail(err)
		return
	}
	for _, p := range pairs {
		s.set(d.params, p.col, p.val)
	}
}
