package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

type orderKey struct {
	column    string
	direction Direction
}

type join struct {
	table string
	on    string
}

// Builder constructs SQL SELECT queries for Cloud Spanner.
// Every method returns a new Builder, so a base query can be shared
// between a page query and its count query. Parameter names are
// generated (@p0, @p1, ...) in the order conditions were added.
type Builder struct {
	table        string
	selectCols   []string
	joins        []join
	whereClauses []Condition
	orderBy      []orderKey
	limitVal     int64
	offsetVal    int64
}

// From creates a new Builder for the specified table.
// The table may carry an alias, e.g. From("catalogs c").
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends columns to the select list.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// LeftJoin adds a LEFT OUTER JOIN with the given ON expression.
func (b *Builder) LeftJoin(table, on string) *Builder {
	nb := b.clone()
	nb.joins = append(nb.joins, join{table: table, on: on})
	return nb
}

// Where adds a WHERE condition.
// Multiple calls are combined with AND logic.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.whereClauses = append(nb.whereClauses, condition)
	return nb
}

// OrderBy appends a sort key. Keys apply in the order they were added.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orderBy = append(nb.orderBy, orderKey{column: column, direction: direction})
	return nb
}

// Limit sets the maximum number of rows to return.
func (b *Builder) Limit(limit int64) *Builder {
	nb := b.clone()
	nb.limitVal = limit
	return nb
}

// Offset sets the number of rows to skip.
func (b *Builder) Offset(offset int64) *Builder {
	nb := b.clone()
	nb.offsetVal = offset
	return nb
}

// Count returns a builder that generates a COUNT(*) query
// with the same FROM, JOIN and WHERE clauses and no ordering or pagination.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.selectCols = []string{"COUNT(*)"}
	nb.limitVal = 0
	nb.offsetVal = 0
	nb.orderBy = nil
	return nb
}

// Build constructs the final spanner.Statement with SQL and parameters.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	for _, j := range b.joins {
		sql.WriteString(" LEFT JOIN ")
		sql.WriteString(j.table)
		sql.WriteString(" ON ")
		sql.WriteString(j.on)
	}

	if len(b.whereClauses) > 0 {
		sql.WriteString(" WHERE ")
		whereParts := make([]string, 0, len(b.whereClauses))
		paramIndex := 0
		for _, condition := range b.whereClauses {
			fragment, condParams := condition.SQL(paramIndex)
			whereParts = append(whereParts, fragment)
			for k, v := range condParams {
				params[k] = v
			}
			paramIndex += len(condParams)
		}
		sql.WriteString(strings.Join(whereParts, " AND "))
	}

	if len(b.orderBy) > 0 {
		sql.WriteString(" ORDER BY ")
		keys := make([]string, 0, len(b.orderBy))
		for _, k := range b.orderBy {
			if k.direction == Desc {
				keys = append(keys, k.column+" DESC")
			} else {
				keys = append(keys, k.column+" ASC")
			}
		}
		sql.WriteString(strings.Join(keys, ", "))
	}

	if b.limitVal > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limitVal
	}

	if b.offsetVal > 0 {
		sql.WriteString(" OFFSET @offset")
		params["offset"] = b.offsetVal
	}

	return spanner.Statement{
		SQL:    sql.String(),
		Params: params,
	}
}

func (b *Builder) clone() *Builder {
	nb := *b
	nb.selectCols = append([]string(nil), b.selectCols...)
	nb.joins = append([]join(nil), b.joins...)
	nb.whereClauses = append([]Condition(nil), b.whereClauses...)
	nb.orderBy = append([]orderKey(nil), b.orderBy...)
	return &nb
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
