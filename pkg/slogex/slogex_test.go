package slogex

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acronis/go-verrors"
)

func logLine(attr slog.Attr) string {
	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("test", attr)
	return buf.String()
}

func TestValidationError(t *testing.T) {
	e := verrors.New(verrors.Type, verrors.MustPath("items", 1), verrors.MustPath("items", "type"), "string", 42)

	out := logLine(ValidationError(e))
	require.Contains(t, out, "validation_error.document_path=items.1")
	require.Contains(t, out, "validation_error.schema_path=items.type")
	require.Contains(t, out, "validation_error.code=0x24")
	require.Contains(t, out, "validation_error.rule=type")
	require.Contains(t, out, "validation_error.value=42")
	require.NotContains(t, out, "children")

	group := verrors.NewGroup(verrors.Schema, verrors.MustPath("a"), verrors.MustPath("a", "schema"), nil, nil,
		verrors.ErrorList{e})
	require.Contains(t, logLine(ValidationError(group)), "validation_error.children=1")

	require.Equal(t, slog.Attr{}, ValidationError(nil))
}

func TestErrorWithTrace(t *testing.T) {
	require.Equal(t, slog.Attr{}, ErrorWithTrace(nil))
	require.Equal(t, "error", ErrorWithTrace(errors.New("plain")).Key)

	err := verrors.ErrorList{
		verrors.New(verrors.Type, verrors.MustPath("a"), verrors.MustPath("a", "type"), "string", 1),
	}.Err()
	attr := ErrorWithTrace(err)
	require.NotEqual(t, slog.Attr{}, attr)
}

func TestPath(t *testing.T) {
	require.Equal(t, slog.String("path", "a.0.b"), Path("path", verrors.MustPath("a", 0, "b")))
}
