package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/acronis/go-verrors/internal/pkg/command"
)

// ErrInvalidInput marks failures caused by the validated input rather than by the tool.
var ErrInvalidInput = errors.New("input is invalid")

type Error struct {
	Inner error
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Msg, e.Inner)
}

func (e *Error) Unwrap() error {
	return e.Inner
}

func WrapError(err error) error {
	if err == nil {
		return nil
	}

	msg := "command failed"
	if errors.Is(err, ErrInvalidInput) {
		msg = "validation failed"
	}
	return &Error{
		Inner: err,
		Msg:   msg,
	}
}

// Run executes the command and wraps its failure for reporting by the entrypoint.
func Run(ctx context.Context, c command.Command) error {
	return WrapError(c.Execute(ctx))
}
