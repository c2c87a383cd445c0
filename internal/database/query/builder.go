// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

// Package query provides SQL query building utilities for the database package.
// It reduces code duplication and provides type-safe query construction.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/spawnwatch/internal/models"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
// It ensures consistent parameter handling and reduces SQL injection risks.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddBoundingBox("latitude", "longitude", bbox)
//	wb.AddAfter("disappear_time", now)
//	whereClause, args := wb.Build()
//	// latitude >= ? AND latitude <= ? AND longitude >= ? AND longitude <= ? AND disappear_time > ?
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw WHERE clause with its arguments.
// This is useful for custom conditions not covered by helper methods.
//
// Parameters:
//   - clause: SQL condition fragment (e.g., "enabled = ?")
//   - args: Arguments to bind to placeholders in the clause
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddBoundingBox adds one inclusive predicate per bound present in bbox.
// Nil bounds are skipped, so partial boxes filter only on the sides given.
//
// Generates, for a full box:
//   - "<lat> >= ?", "<lat> <= ?", "<lng> >= ?", "<lng> <= ?"
func (wb *WhereBuilder) AddBoundingBox(latCol, lngCol string, bbox models.BoundingBox) *WhereBuilder {
	if bbox.SWLat != nil {
		wb.AddClause(latCol+" >= ?", *bbox.SWLat)
	}
	if bbox.NELat != nil {
		wb.AddClause(latCol+" <= ?", *bbox.NELat)
	}
	if bbox.SWLng != nil {
		wb.AddClause(lngCol+" >= ?", *bbox.SWLng)
	}
	if bbox.NELng != nil {
		wb.AddClause(lngCol+" <= ?", *bbox.NELng)
	}
	return wb
}

// AddAfter adds "<col> > ?" for a strict lower time bound.
func (wb *WhereBuilder) AddAfter(col string, t time.Time) *WhereBuilder {
	return wb.AddClause(col+" > ?", t.UTC())
}

// AddAtOrAfter adds "<col> >= ?" for an inclusive lower time bound.
func (wb *WhereBuilder) AddAtOrAfter(col string, t time.Time) *WhereBuilder {
	return wb.AddClause(col+" >= ?", t.UTC())
}

// AddIntIn adds an IN filter over integer values.
// Generates "<col> IN (?, ?, ...)"; an empty slice is skipped.
func (wb *WhereBuilder) AddIntIn(col string, values []int) *WhereBuilder {
	if len(values) > 0 {
		placeholders := make([]string, len(values))
		for i, v := range values {
			placeholders[i] = "?"
			wb.args = append(wb.args, v)
		}
		wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ", ")))
	}
	return wb
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were added.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}
