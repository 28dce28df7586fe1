package transpile

import "errors"

// Sentinels classifying engine failures.
var (
	ErrParse  = errors.New("parse failed")
	ErrRender = errors.New("render failed")
)

// Error is an engine failure of a given kind. Its message is the message
// of the underlying error so callers can surface it unchanged; errors.Is
// matches both the kind sentinel and anything in the cause chain.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func parseError(err error) error {
	return &Error{Kind: ErrParse, Err: err}
}

func renderError(err error) error {
	return &Error{Kind: ErrRender, Err: err}
}
