package command

import "context"

// Command is a CLI action with its arguments already bound.
type Command interface {
	Execute(ctx context.Context) error
}
