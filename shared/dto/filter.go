package dto

import (
	"fmt"
	"maps"
	"strings"
)

// Comparison operators understood by Filter.
const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLess      = "less"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreater   = "greater"
	FilterOperatorGreaterEq = "greater_eq"
)

const (
	FilterGroupOperatorAnd = "AND"
)

var comparators = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLess:      "<",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreater:   ">",
	FilterOperatorGreaterEq: ">=",
}

// Clause is a boolean sql expression with its named arguments.
type Clause interface {
	GetWhereClause() (string, map[string]any)
}

// Filter compares one column against Value, bound as :ArgName or :Field when no
// ArgName is given. Two filters on the same column need distinct ArgNames.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

// GetWhereClause renders the comparison. Unknown operators render nothing.
func (f Filter) GetWhereClause() (string, map[string]any) {
	comparator, ok := comparators[f.Operator]
	if !ok {
		return "", map[string]any{}
	}

	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	arg := f.ArgName
	if arg == "" {
		arg = f.Field
	}

	return fmt.Sprintf("%s %s :%s", column, comparator, arg), map[string]any{arg: f.Value}
}

// FilterGroup joins its clauses with Operator, AND when unset. Groups nest.
type FilterGroup struct {
	Filters  []Clause
	Operator string
}

func (g FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	parts := make([]string, 0, len(g.Filters))

	for _, clause := range g.Filters {
		where, clauseArgs := clause.GetWhereClause()
		if where == "" {
			continue
		}

		parts = append(parts, where)
		maps.Copy(args, clauseArgs)
	}

	if len(parts) == 0 {
		return "", args
	}

	operator := g.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(parts, " "+operator+" ") + ")", args
}
