package qb

import "fmt"

// Kind is the node type of a binary expression.
type Kind int

const (
	Equal Kind = iota
	NotEqual
	GreaterThan
	LessThan
	GreaterThanOrEqual
	LessThanOrEqual

	Add
	Subtract
	Multiply
	Divide
	Modulo
	AndAlso
	OrElse
)

var kindNames = [...]string{
	Equal:              "Equal",
	NotEqual:           "NotEqual",
	GreaterThan:        "GreaterThan",
	LessThan:           "LessThan",
	GreaterThanOrEqual: "GreaterThanOrEqual",
	LessThanOrEqual:    "LessThanOrEqual",
	Add:                "Add",
	Subtract:           "Subtract",
	Multiply:           "Multiply",
	Divide:             "Divide",
	Modulo:             "Modulo",
	AndAlso:            "AndAlso",
	OrElse:             "OrElse",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Predicate is a condition accepted by Translate. The set of implementations
// is closed: Comparison, Call and Raw.
type Predicate interface {
	predicate()
}

// Comparison is a binary comparison between a member of the entity and a value.
type Comparison struct {
	Kind        Kind
	Left, Right Expr
}

// Call is a method call pattern on a member, e.g. Contains.
type Call struct {
	Method string
	Object Expr
	Args   []Expr
}

// Raw is an alias/column/operator/value tuple used without translation.
type Raw struct {
	Alias, Column, Op string
	Value             any
}

func (Comparison) predicate() {}
func (Call) predicate()       {}
func (Raw) predicate()        {}

func Compare(kind Kind, left Expr, right any) Predicate {
	return Comparison{Kind: kind, Left: left, Right: Lift(right)}
}

func Eq(col string, val any) Predicate {
	return Compare(Equal, Col(col), val)
}

func Neq(col string, val any) Predicate {
	return Compare(NotEqual, Col(col), val)
}

func Gt(col string, val any) Predicate {
	return Compare(GreaterThan, Col(col), val)
}

func Lt(col string, val any) Predicate {
	return Compare(LessThan, Col(col), val)
}

func Gte(col string, val any) Predicate {
	return Compare(GreaterThanOrEqual, Col(col), val)
}

func Lte(col string, val any) Predicate {
	return Compare(LessThanOrEqual, Col(col), val)
}

// Contains matches rows whose column contains val as a substring. A nil val
// fails translation with ErrUnsupportedExpression.
func Contains(col string, val any) Predicate {
	return Call{Method: "Contains", Object: Col(col), Args: []Expr{Lift(val)}}
}

// Op builds a raw predicate against the statement's own alias.
func Op(col, op string, val any) Predicate {
	return Raw{Column: col, Op: op, Value: val}
}
