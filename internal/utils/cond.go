package querybuilder

// CondType joins a condition to the ones before it
type CondType int

const (
	CondTypeAnd CondType = iota + 1
	CondTypeOr
)

func (c CondType) String() string {
	if c == CondTypeOr {
		return "OR"
	}
	return "AND"
}

// Condition is a single WHERE clause or a parenthesised group of them
type Condition struct {
	condType   CondType
	clause     string
	args       []interface{}
	subCond    []Condition
	isSubGroup bool
}
