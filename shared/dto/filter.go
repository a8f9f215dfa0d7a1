package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLess      = "less"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreater   = "greater"
	FilterOperatorGreaterEq = "greater_eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterIsNull            = "is_null"
	FilterIsNotNull         = "is_not_null"
	// FilterPlainQuery embeds Value as raw SQL with Args bound by name. Never build it
	// from request input.
	FilterPlainQuery = "plain"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLess:      "<",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreater:   ">",
	FilterOperatorGreaterEq: ">=",
}

// Filter is one predicate of a WHERE clause. ArgName overrides the bind name when
// the same field is filtered twice.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
	Args     map[string]any
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName != "" {
		return f.ArgName
	}

	return f.Field
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column, name := f.column(), f.argName()

	if op, ok := comparisons[f.Operator]; ok {
		args[name] = f.Value

		return fmt.Sprintf("%s %s :%s", column, op, name), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[name] = fmt.Sprintf("%%%v%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, name), args
	case FilterOperatorIn:
		return f.inClause(column, name, args)
	case FilterIsNull:
		return column + " IS NULL", args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	case FilterPlainQuery:
		query, _ := f.Value.(string)
		maps.Copy(args, f.Args)

		return "(" + query + ")", args
	}

	return "", args
}

// inClause binds every element separately. An empty list matches nothing.
func (f *Filter) inClause(column, name string, args map[string]any) (string, map[string]any) {
	value := reflect.ValueOf(f.Value)

	if value.Kind() != reflect.Slice && value.Kind() != reflect.Array {
		args[name] = f.Value

		return fmt.Sprintf("%s IN (:%s)", column, name), args
	}

	if value.Len() == 0 {
		return "FALSE", args
	}

	binds := make([]string, value.Len())

	for i := range value.Len() {
		key := fmt.Sprintf("%s_%d", name, i)
		args[key] = value.Index(i).Interface()
		binds[i] = ":" + key
	}

	return fmt.Sprintf("%s IN (%s)", column, strings.Join(binds, ", ")), args
}

// FilterGroup joins Filters and nested FilterGroups with Operator, AND when empty.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, item := range f.Filters {
		var (
			clause string
			bound  map[string]any
		)

		switch filter := item.(type) {
		case Filter:
			clause, bound = filter.GetWhereClause()
		case FilterGroup:
			clause, bound = filter.GetWhereClause()
		default:
			continue
		}

		if clause == "" {
			continue
		}

		clauses = append(clauses, clause)
		maps.Copy(args, bound)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(clauses, " "+operator+" ") + ")", args
}
