package reportcmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acronis/go-verrors/internal/app/command"
	"github.com/acronis/go-verrors/pkg/testsupp"
)

const errorsFile = `[
  {"document_path": ["items", 1, "name"], "schema_path": ["items", "items", 1, "name", "type"],
   "code": "0x24", "constraint": "string", "value": 5},
  {"document_path": ["foo"], "schema_path": ["foo"], "code": 3}
]`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	testsupp.InitLog(t)

	c := New(context.Background())
	command.AddWorkDirFlag(c)
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestReport(t *testing.T) {
	path := testsupp.WriteFile(t, "errors.json", errorsFile)
	messages := testsupp.WriteFile(t, "messages.yaml", "messages:\n  \"0x24\": \"expected {constraint}\"\n")

	tests := map[string]struct {
		args     []string
		expected string
	}{
		"json": {
			args: []string{"--format", "json", path},
			expected: `{
  "items": [
    {
      "1": [
        {
          "name": [
            "must be of string type"
          ]
        }
      ]
    }
  ],
  "foo": [
    "unknown field"
  ]
}
`,
		},
		"schema messages": {
			args:     []string{"-f", "json", "--schema-messages", path},
			expected: "unknown rule",
		},
		"message overrides": {
			args:     []string{"--messages", messages, path},
			expected: "- expected string",
		},
		"yaml": {
			args:     []string{path},
			expected: "- must be of string type",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, tc.args...)
			require.NoError(t, err)
			require.Contains(t, out, tc.expected)
		})
	}
}

func TestReport_Failures(t *testing.T) {
	path := testsupp.WriteFile(t, "errors.json", errorsFile)

	_, err := run(t, "--format", "xml", path)
	require.Error(t, err)

	_, err = run(t, testsupp.WriteFile(t, "broken.json", `{"not": "a list"}`))
	var cmdErr *command.Error
	require.True(t, errors.As(err, &cmdErr))

	_, err = run(t, "--messages", testsupp.WriteFile(t, "bad.yaml", "base: nope\n"), path)
	require.Error(t, err)

	_, err = run(t)
	require.Error(t, err)
}
