package termid

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a processing failure. Every kind is fatal for the batch.
type Kind int

const (
	// KindFormat indicates an unsupported generation method.
	KindFormat Kind = iota + 1

	// KindExhaustion indicates collision retries ran out for a label.
	KindExhaustion

	// KindUniqueness indicates missing or duplicate label/id values.
	KindUniqueness

	// KindOrdering indicates a dependency cycle or an unresolvable parent.
	KindOrdering

	// KindInternal indicates a remap lookup miss while patching parents.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindExhaustion:
		return "exhaustion"
	case KindUniqueness:
		return "uniqueness"
	case KindOrdering:
		return "ordering"
	case KindInternal:
		return "internal-consistency"
	default:
		return "unknown"
	}
}

// Sentinels for matching a Kind with errors.Is.
var (
	ErrFormat     = &Error{Kind: KindFormat}
	ErrExhaustion = &Error{Kind: KindExhaustion}
	ErrUniqueness = &Error{Kind: KindUniqueness}
	ErrOrdering   = &Error{Kind: KindOrdering}
	ErrInternal   = &Error{Kind: KindInternal}
)

// Error is the error type returned by every operation in this package.
type Error struct {
	// Kind is the failure category.
	Kind Kind

	// Op names the operation that failed, e.g. "generate" or "order".
	Op string

	// Message is a human-readable description.
	Message string

	// Values lists the offending values (labels, ids, parent references).
	Values []string

	// Err is the underlying cause, if any.
	Err error
}

func newError(kind Kind, op, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Values) > 0 {
		fmt.Fprintf(&b, " %q", e.Values)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind. This lets callers
// write errors.Is(err, termid.ErrOrdering).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
