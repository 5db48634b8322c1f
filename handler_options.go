/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package verrors

import "log/slog"

// HandlerOption is an interface for functional options that can be passed to the handler constructors.
type HandlerOption interface {
	apply(*handlerOptions)
}

type handlerOptions struct {
	catalog *Catalog
	logger  *slog.Logger
}

type catalogHandlerOption struct {
	catalog *Catalog
}

func (o catalogHandlerOption) apply(opts *handlerOptions) {
	opts.catalog = o.catalog
}

// WithCatalog replaces the message catalog the handler formats errors with.
func WithCatalog(c *Catalog) HandlerOption {
	return catalogHandlerOption{catalog: c}
}

type loggerHandlerOption struct {
	logger *slog.Logger
}

func (o loggerHandlerOption) apply(opts *handlerOptions) {
	opts.logger = o.logger
}

// WithLogger sets the logger the handler emits errors to. slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) HandlerOption {
	return loggerHandlerOption{logger: l}
}

func makeHandlerOptions(defaults handlerOptions, opts ...HandlerOption) handlerOptions {
	options := defaults
	for _, opt := range opts {
		opt.apply(&options)
	}
	if options.catalog == nil {
		options.catalog = DefaultCatalog()
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	return options
}
