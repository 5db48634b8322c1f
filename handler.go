/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package verrors

import (
	"context"
	"errors"
)

// ErrorHandler turns the errors of a validation run into a handler-specific format.
//
// A handler may be reused across runs. Validators call the optional lifecycle hooks through
// Start and End; handlers that implement Starter must reset their state there.
type ErrorHandler interface {
	// Add adds an error to the handler's state.
	Add(e *ValidationError)
	// Call resets the handler, adds all errors and returns them in the handler's format.
	Call(errs ErrorList) any
}

// Emitter is implemented by handlers that pass each error to a side channel, e.g. a log.
type Emitter interface {
	Emit(e *ValidationError)
}

// Starter is implemented by handlers that need to know when a validation run starts.
type Starter interface {
	Start(ctx context.Context)
}

// Ender is implemented by handlers that need to know when a validation run ends.
type Ender interface {
	End(ctx context.Context)
}

// Iterator is implemented by handlers that expose the errors they accumulated.
type Iterator interface {
	Iterate() (ErrorList, error)
}

// ErrIterationUnsupported is returned by handlers that don't keep the errors they were given.
var ErrIterationUnsupported = errors.New("error handler does not support iteration")

// BaseHandler provides no-op implementations of the optional handler methods.
// Embed it into handlers that implement only Add and Call.
type BaseHandler struct{}

func (BaseHandler) Emit(*ValidationError) {}

func (BaseHandler) Start(context.Context) {}

func (BaseHandler) End(context.Context) {}

func (BaseHandler) Iterate() (ErrorList, error) {
	return nil, ErrIterationUnsupported
}

// Extend adds all errors to the handler in order.
func Extend(h ErrorHandler, errs ErrorList) {
	for _, e := range errs {
		h.Add(e)
	}
}

// Start notifies the handler that a validation run starts, if it implements Starter.
func Start(ctx context.Context, h ErrorHandler) {
	if s, ok := h.(Starter); ok {
		s.Start(ctx)
	}
}

// End notifies the handler that a validation run ended, if it implements Ender.
func End(ctx context.Context, h ErrorHandler) {
	if s, ok := h.(Ender); ok {
		s.End(ctx)
	}
}

// Emit passes the error to the handler's side channel, if it implements Emitter.
func Emit(h ErrorHandler, e *ValidationError) {
	if s, ok := h.(Emitter); ok {
		s.Emit(e)
	}
}

// Iterate returns the errors accumulated by the handler.
func Iterate(h ErrorHandler) (ErrorList, error) {
	if s, ok := h.(Iterator); ok {
		return s.Iterate()
	}
	return nil, ErrIterationUnsupported
}

// ToyHandler is a placeholder for configurations that must never report errors.
// Using it is a programming error and panics.
type ToyHandler struct {
	BaseHandler
}

const toyHandlerMessage = "this is not supposed to happen"

func (ToyHandler) Add(*ValidationError) {
	panic(toyHandlerMessage)
}

func (ToyHandler) Call(ErrorList) any {
	panic(toyHandlerMessage)
}
