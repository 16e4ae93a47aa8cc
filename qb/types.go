package qb

// Connector joins a clause to the one before it.
type Connector string

const (
	And Connector = "AND"
	Or  Connector = "OR"
)

type SortBy int

const (
	Ascend SortBy = iota
	Descend
)

func (s SortBy) String() string {
	if s == Descend {
		return "DESC"
	}
	return "ASC"
}
