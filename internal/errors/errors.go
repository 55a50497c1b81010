// internal/errors/errors.go
package appErrors

import (
	"fmt"
	"strings"
)

// ErrMissingField marks a row missing a required column (email/name).
// Rows with this error are skipped and counted, never fatal.
type ErrMissingField struct {
	Field string
	Line  int
}

func (e *ErrMissingField) Error() string {
	return fmt.Sprintf("row %d: missing required field %q", e.Line, e.Field)
}

func NewMissingField(field string, line int) error {
	return &ErrMissingField{Field: field, Line: line}
}

// ErrMalformedLink marks a LinkedIn URL that is present but unparseable.
// Non-fatal: the participant is flagged, not excluded.
type ErrMalformedLink struct {
	URL string
}

func (e *ErrMalformedLink) Error() string {
	return fmt.Sprintf("malformed linkedin url %q", e.URL)
}

func NewMalformedLink(url string) error {
	return &ErrMalformedLink{URL: url}
}

// ErrSendFailure wraps a failed external send attempt.
type ErrSendFailure struct {
	Recipient string
	Attempt   int
	Err       error
}

func (e *ErrSendFailure) Error() string {
	return fmt.Sprintf("send to %s failed (attempt %d): %v", e.Recipient, e.Attempt, e.Err)
}

func (e *ErrSendFailure) Unwrap() error { return e.Err }

func NewSendFailure(recipient string, attempt int, err error) error {
	return &ErrSendFailure{Recipient: recipient, Attempt: attempt, Err: err}
}

// ErrMissingCredentials aborts the run before any send attempt when live
// mode is requested without the credentials it needs.
type ErrMissingCredentials struct {
	Vars []string
}

func (e *ErrMissingCredentials) Error() string {
	return fmt.Sprintf("live mode requires credentials: set %s", strings.Join(e.Vars, ", "))
}

func NewMissingCredentials(vars ...string) error {
	return &ErrMissingCredentials{Vars: vars}
}
