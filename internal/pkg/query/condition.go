package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause fragment. Implementations generate
// SQL using Spanner's named parameter format (@paramName), with paramIndex
// used to keep generated names unique within one statement.
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

// Eq creates an equality condition (field = value).
func Eq(field string, value interface{}) Condition {
	return &eqCondition{field: field, value: value}
}

type eqCondition struct {
	field string
	value interface{}
}

func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	param := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s = @%s", c.field, param), map[string]interface{}{param: c.value}
}

// Contains creates a case-insensitive substring match on a STRING column.
// Generates "LOWER(field) LIKE @pN" with a %term% pattern.
func Contains(field, term string) Condition {
	return &containsCondition{field: field, term: term}
}

type containsCondition struct {
	field string
	term  string
}

func (c *containsCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	param := fmt.Sprintf("p%d", paramIndex)
	pattern := "%" + escapeLike(strings.ToLower(c.term)) + "%"
	return fmt.Sprintf("LOWER(%s) LIKE @%s", c.field, param), map[string]interface{}{param: pattern}
}

// escapeLike escapes LIKE metacharacters in a user-supplied search term.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// IsNull creates a "field IS NULL" condition.
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

type isNullCondition struct {
	field string
}

func (c *isNullCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NULL", c.field), nil
}
