package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

type eqCondition struct {
	field string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("category_id", int64(7)) generates "category_id = @p0"
func Eq(field string, value interface{}) Condition {
	return &eqCondition{field: field, value: value}
}

func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s = @%s", c.field, paramName), map[string]interface{}{paramName: c.value}
}

type inCondition struct {
	field  string
	values []int64
}

// In creates a membership condition against an array parameter.
// Example: In("catalog_id", ids) generates "catalog_id IN UNNEST(@p0)"
func In(field string, values []int64) Condition {
	return &inCondition{field: field, values: values}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName), map[string]interface{}{paramName: c.values}
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("product_code_id") generates "product_code_id IS NULL"
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

type isNullCondition struct {
	field string
}

func (c *isNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

type isNotNullCondition struct {
	field string
}

func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NOT NULL", c.field), map[string]interface{}{}
}
