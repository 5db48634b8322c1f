package loghandler

import (
	"context"
	"log/slog"

	"github.com/acronis/go-verrors"
	"github.com/acronis/go-verrors/pkg/slogex"
)

// Handler writes every validation error to a structured log instead of building a report.
type Handler struct {
	logger  *slog.Logger
	catalog *verrors.Catalog
	level   slog.Level
	errs    verrors.ErrorList
	run     int
}

var _ interface {
	verrors.ErrorHandler
	verrors.Emitter
	verrors.Starter
	verrors.Ender
	verrors.Iterator
} = (*Handler)(nil)

type Option func(*Handler)

// WithLogger sets the destination logger. slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// WithCatalog sets the catalog the log messages are formatted with.
func WithCatalog(c *verrors.Catalog) Option {
	return func(h *Handler) {
		h.catalog = c
	}
}

// WithLevel sets the level errors are logged at. The default is slog.LevelWarn.
func WithLevel(level slog.Level) Option {
	return func(h *Handler) {
		h.level = level
	}
}

func New(opts ...Option) *Handler {
	h := &Handler{
		catalog: verrors.DefaultCatalog(),
		level:   slog.LevelWarn,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	return h
}

// Add keeps the error and logs it, including the children of group errors.
func (h *Handler) Add(e *verrors.ValidationError) {
	h.errs = append(h.errs, e)
	h.Emit(e)
}

// Call logs all errors of a fresh run and returns how many were logged, children excluded.
func (h *Handler) Call(errs verrors.ErrorList) any {
	ctx := context.Background()
	h.Start(ctx)
	verrors.Extend(h, errs)
	h.End(ctx)
	return len(h.errs)
}

func (h *Handler) Emit(e *verrors.ValidationError) {
	h.emit(context.Background(), e)
}

func (h *Handler) emit(ctx context.Context, e *verrors.ValidationError) {
	msg, ok := h.catalog.Message(e)
	if !ok {
		msg = e.Definition().String()
	}
	h.logger.Log(ctx, h.level, msg, slogex.ValidationError(e))
	for _, child := range e.ChildErrors() {
		h.emit(ctx, child)
	}
}

func (h *Handler) Start(ctx context.Context) {
	h.errs = nil
	h.run++
	h.logger.DebugContext(ctx, "Validation run started", slog.Int("run", h.run))
}

func (h *Handler) End(ctx context.Context) {
	h.logger.DebugContext(ctx, "Validation run finished", slog.Int("run", h.run), slog.Int("errors", len(h.errs)))
}

// Iterate returns the errors added since the last start, in order.
func (h *Handler) Iterate() (verrors.ErrorList, error) {
	return h.errs, nil
}
