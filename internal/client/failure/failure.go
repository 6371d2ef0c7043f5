// Package failure converts transport, persistence and validation outcomes
// into the four user-facing error kinds the screens understand.
//
// Every *Error matches exactly one of ErrValidation, ErrAuth, ErrNetwork or
// ErrUnexpected with errors.Is, and also matches the error it was built from.
package failure

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/grievdesk/internal/client/client"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
	"github.com/dmitrijs2005/grievdesk/internal/common"
)

var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("auth error")
	ErrNetwork    = errors.New("network error")
	ErrUnexpected = errors.New("unexpected error")
)

const (
	DefaultNetworkMessage    = "No response from the server. Please check your connection."
	DefaultUnexpectedMessage = "An error occurred. Please try again."
	NoSessionMessage         = "Please sign in to continue."
)

type Error struct {
	Kind error

	// Message is the global, non-field text. Empty when the error is
	// entirely field scoped.
	Message string

	// Fields holds field scoped messages.
	Fields validators.Errors

	Err error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if msg := e.firstField(); msg != "" {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprint(e.Kind)
}

// firstField returns the message of the alphabetically first field.
func (e *Error) firstField() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return e.Fields[keys[0]]
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Field returns the message for name, or "".
func (e *Error) Field(name string) string {
	return e.Fields[name]
}

// Invalid builds a validation failure from a non-empty error set.
func Invalid(fields validators.Errors) *Error {
	return &Error{Kind: ErrValidation, Fields: fields.Clone()}
}

// Messages tailors Classify to one screen.
type Messages struct {
	// Reject maps a server rejection to a field-scoped (field != "") or
	// global message. Nil means every rejection gets Unexpected.
	Reject func(se *client.StatusError) (field, message string)

	Network    string
	Unexpected string

	// WithCause appends the underlying error text to Unexpected.
	WithCause bool
}

func (m Messages) network() string {
	if m.Network == "" {
		return DefaultNetworkMessage
	}
	return m.Network
}

func (m Messages) unexpected(err error) string {
	msg := m.Unexpected
	if msg == "" {
		msg = DefaultUnexpectedMessage
	}
	if m.WithCause {
		msg += err.Error()
	}
	return msg
}

// Classify converts err into an *Error. It returns nil for nil and passes an
// existing *Error through unchanged.
func Classify(err error, m Messages) *Error {
	if err == nil {
		return nil
	}

	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}

	if errors.Is(err, common.ErrNoSession) {
		return &Error{Kind: ErrAuth, Message: NoSessionMessage, Err: err}
	}

	if errors.Is(err, client.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: ErrNetwork, Message: m.network(), Err: err}
	}

	var se *client.StatusError
	if errors.As(err, &se) {
		kind := ErrUnexpected
		if se.ClientError() {
			kind = ErrAuth
		}
		if m.Reject == nil {
			return &Error{Kind: kind, Message: m.unexpected(err), Err: err}
		}
		field, msg := m.Reject(se)
		if field != "" {
			return &Error{Kind: kind, Fields: validators.Errors{field: msg}, Err: err}
		}
		return &Error{Kind: kind, Message: msg, Err: err}
	}

	return &Error{Kind: ErrUnexpected, Message: m.unexpected(err), Err: err}
}

// UserMessage returns the text a screen shows for err: the global message,
// or the first field message in name order.
func UserMessage(err error) string {
	var fe *Error
	if !errors.As(err, &fe) {
		return DefaultUnexpectedMessage
	}
	if fe.Message != "" {
		return fe.Message
	}
	if msg := fe.firstField(); msg != "" {
		return msg
	}
	return DefaultUnexpectedMessage
}

// KindName is a short label for logs.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrNetwork):
		return "network"
	default:
		return "unexpected"
	}
}
