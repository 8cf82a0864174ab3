// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error type for the copy engine.

It provides a rich error type that bridges low-level driver/validation
failures and the structured context a caller needs to fix a spec and
re-run: offending tables and columns, generated code snippets, cycle
members.

Architecture:

  - AppError: a struct containing a machine-readable Code, a message, an
    optional Cause, and the offending Tables and Columns as structured data.
  - Mapping: each copy-engine failure mode (missing spec, duplicate
    output, schema mismatch, dependency cycle, driver failure, malformed
    JSON) gets its own constructor below, so callers can distinguish
    failure modes with [errors.As] instead of string matching.

Every error that leaves [orchestrator.DBCopier.Run] should be wrapped as
an [AppError].
*/
package apperr

import (
	"errors"
	"fmt"
)

// AppError is the canonical error type for the copy engine.
//
// # Security
//
// The Cause field is for server-side logging only; it may wrap a driver
// error carrying a raw SQL statement, and should not be surfaced to any
// untrusted caller.
type AppError struct {
	// Code is a machine-readable error identifier, e.g. "SPEC_MISSING".
	Code string `json:"code"`
	// Message is a human-readable description, including the generated
	// snippet text for SPEC_MISSING failures.
	Message string `json:"error"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Tables names the offending tables, when applicable.
	Tables []string `json:"tables,omitempty"`
	// Columns names the offending columns, when applicable.
	Columns []string `json:"columns,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Coverage Validator Errors

// SpecMissing reports tables with no entry in the user's spec map, or
// data columns an existing TableSpec never addresses. msg carries the
// generated copy-pastable snippet text and human-readable diagnostics;
// tables and columns carry the same offending names as structured data,
// so a caller can act on the failure without parsing msg.
func SpecMissing(tables []string, columns []string, msg string) *AppError {
	return &AppError{Code: "SPEC_MISSING", Message: msg, Tables: tables, Columns: columns}
}

// SpecDuplicate reports a TableSpec whose outputs name the same
// destination column more than once.
func SpecDuplicate(table string, column string) *AppError {
	return &AppError{
		Code:    "SPEC_DUPLICATE",
		Message: fmt.Sprintf("table %q: output column %q is declared more than once", table, column),
		Tables:  []string{table},
		Columns: []string{column},
	}
}

// SchemaMismatch reports a TableSpec output that names a column absent
// from the reflected source schema. Data columns a spec never addresses
// are reported by [SpecMissing].
func SchemaMismatch(table string, columns []string, msg string) *AppError {
	return &AppError{Code: "SCHEMA_MISMATCH", Message: msg, Tables: []string{table}, Columns: columns}
}

// # Topological Sorter Errors

// CycleDetected reports a dependency cycle among distinct tables not
// reducible by ignoring self-referencing foreign keys.
func CycleDetected(tables []string) *AppError {
	return &AppError{
		Code:    "CYCLE_DETECTED",
		Message: fmt.Sprintf("dependency cycle detected among tables: %v", tables),
		Tables:  tables,
	}
}

// # Driver / Runtime Errors

// DriverError wraps a failure from the PostgreSQL driver — a connection
// error, a constraint violation, a malformed query — with table context.
func DriverError(table string, cause error) *AppError {
	return &AppError{
		Code:    "DRIVER_ERROR",
		Message: fmt.Sprintf("table %q: driver error: %v", table, cause),
		Cause:   cause,
		Tables:  []string{table},
	}
}

// JSONMalformed reports a JsonRewrite output column whose source value
// failed to parse as JSON.
func JSONMalformed(table, column string, cause error) *AppError {
	return &AppError{
		Code:    "JSON_MALFORMED",
		Message: fmt.Sprintf("table %q: column %q: malformed JSON: %v", table, column, cause),
		Cause:   cause,
		Tables:  []string{table},
		Columns: []string{column},
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
