package qb

import (
	"reflect"
	"strings"
)

// Expr is one side of a predicate. The set of implementations is closed.
type Expr interface {
	expr()
}

// Member is a member access on the entity being queried.
type Member struct {
	Name string
}

// Convert wraps an expression in a type conversion. A nil Type unwraps only.
type Convert struct {
	Operand Expr
	Type    reflect.Type
}

type Const struct {
	Value any
}

// Captured reads member Name from a value captured by the caller, such as a
// request struct or a map of filters.
type Captured struct {
	Object any
	Name   string
}

// Eval produces a value by running caller code at translation time. It is the
// one place the translator trusts logic outside the expression tree, so it
// must be a pure value producer.
type Eval func() (any, error)

func (Member) expr()   {}
func (Convert) expr()  {}
func (Const) expr()    {}
func (Captured) expr() {}
func (Eval) expr()     {}

func Col(name string) Member {
	return Member{Name: name}
}

func Field(obj any, name string) Captured {
	return Captured{Object: obj, Name: name}
}

func Conv(e Expr, typ reflect.Type) Convert {
	return Convert{Operand: e, Type: typ}
}

func Func(fn func() (any, error)) Eval {
	return Eval(fn)
}

// Lift wraps a plain Go value as an Expr. Exprs pass through and value
// producing funcs become Eval.
func Lift(v any) Expr {
	switch e := v.(type) {
	case Expr:
		return e
	case func() (any, error):
		return Eval(e)
	case func() any:
		return Eval(func() (any, error) { return e(), nil })
	}
	return Const{Value: v}
}

// Qualify prefixes col with alias. Columns that are already qualified and
// empty aliases are left alone.
func Qualify(alias, col string) string {
	if alias == "" || strings.Contains(col, ".") {
		return col
	}
	return alias + "." + col
}
