package redox

import (
	"errors"

	"galvani/internal/catalog"
)

// Kind classifies engine failures so front ends can pick a message or status.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindUnknownSpecies      Kind = "unknown_species"
	KindDuplicateSelection  Kind = "duplicate_selection"
	KindSameElementConflict Kind = "same_element_conflict"
	KindRoleConflict        Kind = "role_conflict"
	KindZeroPotentialCell   Kind = "zero_potential_cell"
	KindCatalogCorruption   Kind = "catalog_corruption"
)

// Error is returned by every engine operation. Two Errors match under
// errors.Is when their kinds are equal, so the Err* sentinels below work as
// targets regardless of message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound            = &Error{Kind: KindNotFound, Msg: "species not found"}
	ErrUnknownSpecies      = &Error{Kind: KindUnknownSpecies, Msg: "species is not in the catalog"}
	ErrDuplicateSelection  = &Error{Kind: KindDuplicateSelection, Msg: "the same species was selected twice"}
	ErrSameElementConflict = &Error{Kind: KindSameElementConflict, Msg: "both selections belong to the same element"}
	ErrRoleConflict        = &Error{Kind: KindRoleConflict, Msg: "one reduced and one oxidized species are required"}
	ErrZeroPotentialCell   = &Error{Kind: KindZeroPotentialCell, Msg: "couples have equal standard potentials"}
	ErrCatalogCorruption   = &Error{Kind: KindCatalogCorruption, Msg: "species table is inconsistent"}
)

// KindOf extracts the kind of err. Catalog errors are mapped onto the
// matching engine kinds; anything else yields "".
func KindOf(err error) Kind {
	var e *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &e):
		return e.Kind
	case errors.Is(err, catalog.ErrNotFound):
		return KindNotFound
	case errors.Is(err, catalog.ErrInconsistent):
		return KindCatalogCorruption
	default:
		return ""
	}
}

// IsFatal reports whether err signals broken static data rather than bad input.
func IsFatal(err error) bool {
	return KindOf(err) == KindCatalogCorruption
}

// IsValidation reports whether err is a user-correctable selection problem.
func IsValidation(err error) bool {
	switch KindOf(err) {
	case KindNotFound, KindUnknownSpecies, KindDuplicateSelection,
		KindSameElementConflict, KindRoleConflict, KindZeroPotentialCell:
		return true
	}
	return false
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}
