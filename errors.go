package shellfie

import (
	"errors"
	"fmt"
)

// Kind classifies an [Error] so callers (the CLI) can map it to an exit code.
type Kind uint8

const (
	KindUnknown    Kind = iota
	KindParse           // config could not be read or decoded
	KindValidation      // config decoded but is semantically invalid
	KindRender          // layout or rasterization failed
	KindDependency      // a required external program is missing
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindValidation:
		return "validation error"
	case KindRender:
		return "render error"
	case KindDependency:
		return "dependency error"
	default:
		return "error"
	}
}

// Sentinels for errors.Is checks against an [Error]'s kind.
var (
	ErrParse      = &Error{Kind: KindParse}
	ErrValidation = &Error{Kind: KindValidation}
	ErrRender     = &Error{Kind: KindRender}
	ErrDependency = &Error{Kind: KindDependency}
)

// Error is the error type returned by this package.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "layout" or "decode"
	Msg  string // human-readable detail, may span lines
	Err  error  // underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrRender) works
// regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func parseError(op string, err error, format string, args ...any) error {
	return &Error{Kind: KindParse, Op: op, Msg: fmt.Sprintf(format, args...), Err: err}
}

func validationError(format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: "validate", Msg: fmt.Sprintf(format, args...)}
}

func renderError(op string, err error, format string, args ...any) error {
	return &Error{Kind: KindRender, Op: op, Msg: fmt.Sprintf(format, args...), Err: err}
}
