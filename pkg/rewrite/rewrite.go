// Package rewrite maps table references in SELECT statements to new
// identifiers.
//
// A caller-supplied Handler, bound when the Rewriter is built, is
// invoked once per resolvable table reference
// (a reference with both a database and a table name). The handler returns
// a Decision describing, per component, whether to keep it, clear it, or
// replace it. Bare table names are skipped by default since they usually
// refer to CTEs; WithUnqualified opts in to visiting them, with names that
// match a CTE in scope still protected.
package rewrite

import (
	"errors"
	"strings"
)

// TableID identifies a table reference handed to a Handler.
// An empty component is absent from the reference.
type TableID struct {
	Catalog  string
	Database string
	Name     string
}

// String returns the dotted form of the identifier.
func (id TableID) String() string {
	parts := make([]string, 0, 3)
	if id.Catalog != "" {
		parts = append(parts, id.Catalog)
	}
	if id.Database != "" {
		parts = append(parts, id.Database)
	}
	parts = append(parts, id.Name)
	return strings.Join(parts, ".")
}

// Handler decides how a single table reference is rewritten.
// Returning an error aborts the rewrite; already-applied decisions are
// not rolled back.
type Handler func(id TableID) (Decision, error)

// slotKind is the action a Slot encodes.
type slotKind int

const (
	slotKeep slotKind = iota
	slotClear
	slotSet
)

// Slot is a per-component rewrite action. The zero value keeps the
// component unchanged.
type Slot struct {
	kind  slotKind
	value string
}

// Keep leaves the component as it is.
func Keep() Slot {
	return Slot{kind: slotKeep}
}

// Clear removes the component from the reference.
func Clear() Slot {
	return Slot{kind: slotClear}
}

// Set replaces the component with the given name.
func Set(value string) Slot {
	return Slot{kind: slotSet, value: value}
}

// Decision describes what happens to each component of a table reference.
// The zero value keeps the reference unchanged.
type Decision struct {
	Catalog  Slot
	Database Slot
	Name     Slot
}

// KeepAll is the no-op decision.
func KeepAll() Decision {
	return Decision{}
}

// Rewrite errors.
var (
	// ErrHandlerRequired is returned when a Rewriter was built without
	// a handler.
	ErrHandlerRequired = errors.New("handler is required")
	// ErrClearName is returned when a decision clears the table name.
	ErrClearName = errors.New("cannot clear table name")
	// ErrEmptyValue is returned when a decision sets a component to "".
	ErrEmptyValue = errors.New("replacement component is empty")
	// ErrCatalogWithoutDatabase is returned when applying a decision
	// would leave a catalog on a reference with no database.
	ErrCatalogWithoutDatabase = errors.New("catalog requires a database")
)
