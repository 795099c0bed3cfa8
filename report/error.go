// Package report provides the structured errors and user-facing diagnostic
// reports used across picking.
//
// Library code returns *Error values: a closed Kind plus a message, wrapped
// with eris so the origin carries a stack trace. Diagnostic metadata
// (severity, code, help text, reference URL) is not stored on errors; it is
// attached when an error is turned into a Report at the reporting boundary,
// which is also the only place arbitrary third-party errors are accepted.
package report

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
)

// Kind classifies an Error.
type Kind uint8

const (
	KindUnknown          Kind = iota // unclassified failure
	KindInvalidConfig                // configuration failed validation
	KindScriptParse                  // a pointer script could not be parsed
	KindDuplicatePointer             // a pointer id is already spawned
	KindUnknownPointer               // no live pointer carries the id
	KindPluginSetup                  // plugin set is inconsistent
	KindExternal                     // an error from outside this module
)

func (k Kind) String() string {
	switch k {
	case KindInvalidConfig:
		return "invalid_config"
	case KindScriptParse:
		return "script_parse"
	case KindDuplicatePointer:
		return "duplicate_pointer"
	case KindUnknownPointer:
		return "unknown_pointer"
	case KindPluginSetup:
		return "plugin_setup"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Error is a classified error. The wrapped chain is built with eris.
type Error struct {
	Kind Kind
	err  error
}

// New returns an Error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, err: eris.New(msg)}
}

// Newf returns an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, err: eris.Errorf(format, args...)}
}

// Wrap classifies err under kind, prefixing msg. Wrapping a nil error
// returns nil.
func Wrap(err error, kind Kind, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, err: eris.Wrap(err, msg)}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, kind Kind, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, err: eris.Wrapf(err, format, args...)}
}

func (e *Error) Error() string {
	if e.err == nil {
		return e.Kind.String()
	}
	return e.err.Error()
}

// Unwrap returns the eris chain.
func (e *Error) Unwrap() error { return e.err }

// Is matches any *Error of the same kind, so sentinel values such as
// ErrDuplicatePointer work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Format supports %+v, which prints the eris stack trace.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		_, _ = fmt.Fprint(s, eris.ToString(e.err, true))
		return
	}
	_, _ = fmt.Fprint(s, e.Error())
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidConfig    = &Error{Kind: KindInvalidConfig}
	ErrScriptParse      = &Error{Kind: KindScriptParse}
	ErrDuplicatePointer = &Error{Kind: KindDuplicatePointer}
	ErrUnknownPointer   = &Error{Kind: KindUnknownPointer}
	ErrPluginSetup      = &Error{Kind: KindPluginSetup}
)

// KindOf returns the kind of the first *Error in err's chain, KindExternal
// for any other non-nil error, and KindUnknown for nil.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindExternal
}
