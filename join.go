package sqlbuilder

import "strings"

type JoinKind string

const (
	JoinInner JoinKind = "INNER JOIN"
	JoinLeft  JoinKind = "LEFT JOIN"
	JoinRight JoinKind = "RIGHT JOIN"
)

// join is one registered fragment. leftAlias is not checked against earlier
// joins; a bad reference renders SQL the database will reject.
type join struct {
	kind      JoinKind
	table     string
	alias     string
	leftAlias string
	leftCol   string
	rightCol  string
}

func (j join) render(sb *strings.Builder) {
	sb.WriteString(string(j.kind))
	sb.WriteString(" ")
	sb.WriteString(j.table)
	sb.WriteString(" AS ")
	sb.WriteString(j.alias)
	sb.WriteString(" ON ")
	sb.WriteString(j.leftAlias)
	sb.WriteString(".")
	sb.WriteString(j.leftCol)
	sb.WriteString(" = ")
	sb.WriteString(j.alias)
	sb.WriteString(".")
	sb.WriteString(j.rightCol)
}

func renderJoins(sb *strings.Builder, joins []join) {
	for _, j := range joins {
		sb.WriteString(" ")
		j.render(sb)
	}
}
