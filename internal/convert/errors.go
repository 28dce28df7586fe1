package convert

import (
	"errors"
	"fmt"
)

// StageError records the pipeline stage a failure happened in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// PanicError is a recovered engine panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("internal error: %v", e.Value)
}

func stageOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return StageParse
}

// message never returns an empty string so a failure is always visible.
func message(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown error"
}
