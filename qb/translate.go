package qb

import (
	"fmt"
	"reflect"
)

// Term is a translated predicate: alias.column op value.
type Term struct {
	Alias, Column, Op string
	Value             any
}

var operators = map[Kind]string{
	Equal:              "=",
	NotEqual:           "!=",
	GreaterThan:        ">",
	LessThan:           "<",
	GreaterThanOrEqual: ">=",
	LessThanOrEqual:    "<=",
}

func Operator(kind Kind) (string, error) {
	if op, ok := operators[kind]; ok {
		return op, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedOperator, kind)
}

// Translate turns p into a term against alias. Raw predicates keep their own
// alias when they have one.
func Translate(p Predicate, alias string) (Term, error) {
	switch p := p.(type) {
	case Comparison:
		col, err := ColumnOf(p.Left)
		if err != nil {
			return Term{}, err
		}
		op, err := Operator(p.Kind)
		if err != nil {
			return Term{}, err
		}
		val, err := ValueOf(p.Right)
		if err != nil {
			return Term{}, err
		}
		return Term{Alias: alias, Column: col, Op: op, Value: val}, nil

	case Call:
		if p.Method != "Contains" || len(p.Args) != 1 {
			return Term{}, fmt.Errorf("%w: method %s", ErrUnsupportedExpression, p.Method)
		}
		col, err := ColumnOf(p.Object)
		if err != nil {
			return Term{}, err
		}
		val, err := ValueOf(p.Args[0])
		if err != nil {
			return Term{}, err
		}
		if rv := reflect.ValueOf(val); !rv.IsValid() || rv.Kind() == reflect.Pointer && rv.IsNil() {
			return Term{}, fmt.Errorf("%w: Contains with a nil argument", ErrUnsupportedExpression)
		}
		return Term{Alias: alias, Column: col, Op: "LIKE", Value: fmt.Sprintf("%%%v%%", val)}, nil

	case Raw:
		if p.Alias != "" {
			alias = p.Alias
		}
		return Term{Alias: alias, Column: p.Column, Op: p.Op, Value: p.Value}, nil
	}

	return Term{}, fmt.Errorf("%w: %T", ErrUnsupportedExpression, p)
}

// ColumnOf extracts the column name from a member access, optionally wrapped
// in a single conversion.
func ColumnOf(e Expr) (string, error) {
	switch e := e.(type) {
	case Member:
		return e.Name, nil
	case Convert:
		if m, ok := e.Operand.(Member); ok {
			return m.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %T", ErrInvalidColumnExpression, e)
}

// ValueOf evaluates the right-hand side of a predicate.
func ValueOf(e Expr) (any, error) {
	switch e := e.(type) {
	case Const:
		return e.Value, nil

	case Captured:
		return readMember(e.Object, e.Name)

	case Convert:
		v, err := ValueOf(e.Operand)
		if err != nil || e.Type == nil || v == nil {
			return v, err
		}
		return convert(v, e.Type)

	case Eval:
		if e == nil {
			break
		}
		v, err := e()
		if err != nil {
			return nil, fmt.Errorf("qb: evaluating expression: %w", err)
		}
		return v, nil

	case Member:
		return nil, fmt.Errorf("%w: member %s of the queried entity has no value", ErrUnsupportedExpression, e.Name)
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedExpression, e)
}

// convert is reflect.Value.Convert without the panics: slices only convert
// to arrays (or array pointers) they are at least as long as.
func convert(v any, typ reflect.Type) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.Type().ConvertibleTo(typ) {
		return nil, fmt.Errorf("%w: cannot convert %T to %s", ErrUnsupportedExpression, v, typ)
	}

	if rv.Kind() == reflect.Slice {
		arr := typ
		if arr.Kind() == reflect.Pointer {
			arr = arr.Elem()
		}
		if arr.Kind() == reflect.Array && rv.Len() < arr.Len() {
			return nil, fmt.Errorf("%w: cannot convert %T of length %d to %s",
				ErrUnsupportedExpression, v, rv.Len(), typ)
		}
	}
	return rv.Convert(typ).Interface(), nil
}

func readMember(obj any, name string) (any, error) {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: member %s of nil %T", ErrUnsupportedExpression, name, obj)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		f := rv.FieldByName(name)
		if f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
			if v.IsValid() {
				return v.Interface(), nil
			}
			return nil, nil
		}
	}

	return nil, fmt.Errorf("%w: no member %s on %T", ErrUnsupportedExpression, name, obj)
}
