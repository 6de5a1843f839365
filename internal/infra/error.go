package infra

import (
	"errors"

	"visit-scheduler/internal/pkg/errs"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind       RepositoryErrorKind
	Constraint string
	msg        string
	err        error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies a store failure. NOT_FOUND and DB_FAILURE are also
// marked with the shared taxonomy so upper layers can test with errs.Is.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := KindDBFailure
	if len(kind) > 0 {
		k = kind[0]
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}

	var out error = RepositoryError{Kind: k, msg: msg, err: err}
	switch k {
	case KindNotFound:
		out = errs.Mark(out, errs.ErrNotFound)
	case KindDBFailure:
		out = errs.Mark(out, errs.ErrStorage)
	}
	return out
}

func WrapConstraintErr(msg string, err error, kind RepositoryErrorKind, constraint string) error {
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: kind, Constraint: constraint, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func ConstraintOf(err error) string {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Constraint
	}
	return ""
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindConflict           RepositoryErrorKind = "CONFLICT"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
)

// Constraint names shared by the Postgres schema and the in-memory store.
const (
	ConstraintSlotStartUnique    = "visit_slots_property_start_key"
	ConstraintSlotNoLiveOverlap  = "visit_slots_no_live_overlap"
	ConstraintBookingLiveSlot    = "bookings_live_slot_key"
	ConstraintBookingLiveVisitor = "bookings_live_visitor_property_key"
)
