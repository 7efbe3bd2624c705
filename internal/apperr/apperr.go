// Package apperr classifies failures crossing the core boundary. Every store
// or workbook operation wraps its underlying cause in an *Error carrying a
// coarse kind and a short user-facing summary; the full cause stays attached
// for the diagnostic log.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindStore covers connectivity, malformed statements and constraint
	// violations in the relational store.
	KindStore Kind = iota
	// KindDocument covers a missing, locked or malformed workbook file.
	KindDocument
	// KindBusy means the workbook is open in its host application.
	KindBusy
	// KindSchemaMismatch means a sheet header does not match the registry.
	KindSchemaMismatch
	// KindValidation means a user-entered field failed type/required checks
	// before any store mutation was attempted.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindStore:
		return "store"
	case KindDocument:
		return "document"
	case KindBusy:
		return "busy"
	case KindSchemaMismatch:
		return "schema mismatch"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Summary string // shown to the user
	Err     error  // full underlying detail, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Summary, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Summary)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, summary string) *Error {
	return &Error{Kind: kind, Summary: summary}
}

func Wrap(kind Kind, summary string, err error) *Error {
	return &Error{Kind: kind, Summary: summary, Err: err}
}

// KindOf reports the classification of err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is lets callers match errors against a bare kind sentinel via errors.Is
// when the concrete cause does not matter.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Summary returns the user-facing message for err. Unclassified errors get a
// generic summary so a raw driver message never reaches the user.
func Summary(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Summary
	}
	return "an unexpected error occurred"
}
