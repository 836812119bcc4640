// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package database

import (
	"fmt"
	"strings"
)

// buildInClause creates a parameterized IN clause for SQL queries.
// Returns the placeholder string and the arguments slice.
//
// Example:
//
//	placeholders, args := buildInClause([]string{"b1", "b2", "b3"})
//	// placeholders = "?,?,?"
//	// args = []interface{}{"b1", "b2", "b3"}
func buildInClause(items []string) (string, []interface{}) {
	placeholders := make([]string, len(items))
	args := make([]interface{}, len(items))
	for i, item := range items {
		placeholders[i] = "?"
		args[i] = item
	}
	return strings.Join(placeholders, ","), args
}

// queryBuilder assembles a SELECT from a base query, AND-ed filters, an
// ORDER BY and a LIMIT/OFFSET.
type queryBuilder struct {
	baseQuery string
	args      []interface{}
	filters   []string
	orderBy   string
	limit     int
	offset    int
}

// newQueryBuilder creates a new query builder with a base query.
func newQueryBuilder(baseQuery string) *queryBuilder {
	return &queryBuilder{
		baseQuery: baseQuery,
		args:      make([]interface{}, 0, 8),
		filters:   make([]string, 0, 4),
	}
}

// whereIn keeps rows whose column is one of values. No-op when values is empty.
func (qb *queryBuilder) whereIn(column string, values []string) *queryBuilder {
	if len(values) > 0 {
		placeholders, args := buildInClause(values)
		qb.filters = append(qb.filters, fmt.Sprintf("%s IN (%s)", column, placeholders))
		qb.args = append(qb.args, args...)
	}
	return qb
}

// whereNotIn drops rows whose column is one of values. No-op when values is empty.
func (qb *queryBuilder) whereNotIn(column string, values []string) *queryBuilder {
	if len(values) > 0 {
		placeholders, args := buildInClause(values)
		qb.filters = append(qb.filters, fmt.Sprintf("%s NOT IN (%s)", column, placeholders))
		qb.args = append(qb.args, args...)
	}
	return qb
}

// order sets the ORDER BY expression. Callers pass constants only.
func (qb *queryBuilder) order(expr string) *queryBuilder {
	qb.orderBy = expr
	return qb
}

// page sets LIMIT and OFFSET. Both are validated integers, so they are
// formatted into the statement rather than bound.
func (qb *queryBuilder) page(limit, offset int) *queryBuilder {
	qb.limit = limit
	qb.offset = offset
	return qb
}

// build returns the final query and its arguments.
func (qb *queryBuilder) build() (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(qb.baseQuery)

	if len(qb.filters) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(qb.filters, " AND "))
	}
	if qb.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(qb.orderBy)
	}
	if qb.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", qb.limit)
	}
	if qb.offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", qb.offset)
	}
	return sb.String(), qb.args
}
