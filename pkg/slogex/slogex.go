package slogex

import (
	"errors"
	"log/slog"

	"github.com/acronis/go-stacktrace"
	stslogex "github.com/acronis/go-stacktrace/slogex"

	"github.com/acronis/go-verrors"
)

// ValidationError describes a validation error as a group of attributes.
func ValidationError(e *verrors.ValidationError) slog.Attr {
	if e == nil {
		return slog.Attr{}
	}
	attrs := []any{
		slog.String("document_path", e.DocumentPath.String()),
		slog.String("schema_path", e.SchemaPath.String()),
		slog.String("code", e.Code.String()),
	}
	if e.Rule != "" {
		attrs = append(attrs, slog.String("rule", e.Rule))
	}
	if e.Value != nil {
		attrs = append(attrs, slog.String("value", verrors.Repr(e.Value)))
	}
	if children := e.ChildErrors(); len(children) > 0 {
		attrs = append(attrs, slog.Int("children", len(children)))
	}
	return slog.Group("validation_error", attrs...)
}

func Path(key string, p verrors.Path) slog.Attr {
	return slog.String(key, p.String())
}

// ErrorWithTrace expands stack-traced errors (e.g. the result of ErrorList.Err) into their traces.
// Other errors are rendered like Error.
func ErrorWithTrace(err error, opts ...stacktrace.TracesOpt) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	var st *stacktrace.StackTrace
	if !errors.As(err, &st) {
		return Error(err)
	}
	return stslogex.ErrToSlogAttr(err, opts...)
}

func Error(err error) slog.Attr {
	return slog.Attr{Key: "error", Value: slog.StringValue(err.Error())}
}
