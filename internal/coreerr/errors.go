// Package coreerr defines the error taxonomy shared by every core component.
//
// Errors are sentinel kinds wrapped with the request identity (model, init
// time, lead) so a caller never has to guess which cycle failed. Use
// errors.Is against the sentinel error values (coreerr.Unresolvable,
// coreerr.BadDialect, ...) and errors.As against *Error to recover the
// identity.
package coreerr

import (
	"fmt"
	"time"
)

// Kind is one of the error taxonomy entries from the error-handling design.
type Kind string

const (
	KindMissingField     Kind = "missing_field"
	KindInvalidRequest   Kind = "invalid_request"
	KindUnresolvable     Kind = "unresolvable"
	KindNoIndex          Kind = "no_index"
	KindBadDialect       Kind = "bad_dialect"
	KindEmptySelection   Kind = "empty_selection"
	KindRangeUnsupported Kind = "range_unsupported"
	KindIOFailed         Kind = "io_failed"
)

// Error wraps a Kind with the identity of the request that failed and an
// optional underlying cause.
type Error struct {
	Kind     Kind
	Model    string
	InitTime time.Time
	Lead     time.Duration
	Field    string // set for KindMissingField
	Err      error
}

func (e *Error) Error() string {
	id := fmt.Sprintf("%s %s+%s", e.Model, e.InitTime.Format("2006-01-02T15Z"), e.Lead)
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: missing field %q", id, e.Kind, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", id, e.Kind, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", id, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, coreerr.Unresolvable) and the other sentinels work
// without callers ever seeing *Error.
func (e *Error) Is(target error) bool {
	if k, ok := target.(kindSentinel); ok {
		return e.Kind == k.kind
	}
	return false
}

type kindSentinel struct{ kind Kind }

func (kindSentinel) Error() string { return "" }

// Sentinel values usable with errors.Is, e.g. errors.Is(err, coreerr.Unresolvable).
var (
	MissingField     error = kindSentinel{KindMissingField}
	InvalidRequest   error = kindSentinel{KindInvalidRequest}
	Unresolvable     error = kindSentinel{KindUnresolvable}
	NoIndex          error = kindSentinel{KindNoIndex}
	BadDialect       error = kindSentinel{KindBadDialect}
	EmptySelection   error = kindSentinel{KindEmptySelection}
	RangeUnsupported error = kindSentinel{KindRangeUnsupported}
	IOFailed         error = kindSentinel{KindIOFailed}
)

// Identity describes the request whose failure is being reported.
type Identity struct {
	Model    string
	InitTime time.Time
	Lead     time.Duration
}

// New builds an *Error of the given kind for the given request identity.
func New(kind Kind, id Identity, cause error) *Error {
	return &Error{Kind: kind, Model: id.Model, InitTime: id.InitTime, Lead: id.Lead, Err: cause}
}

// NewMissingField is a convenience constructor for KindMissingField.
func NewMissingField(id Identity, field string) *Error {
	return &Error{Kind: KindMissingField, Model: id.Model, InitTime: id.InitTime, Lead: id.Lead, Field: field}
}

// Mode controls whether Unresolvable/NoIndex are raised or downgraded to
// warnings, per the global errors={"warn","raise"} parameter (§7).
type Mode string

const (
	ModeRaise Mode = "raise"
	ModeWarn  Mode = "warn"
)

// Downgradable reports whether kind may legally be downgraded to a warning
// under ModeWarn (only Unresolvable and NoIndex may be).
func Downgradable(kind Kind) bool {
	return kind == KindUnresolvable || kind == KindNoIndex
}
