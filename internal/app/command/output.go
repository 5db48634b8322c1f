package command

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/acronis/go-verrors"
)

const (
	formatFlag = "format"

	FormatYAML = "yaml"
	FormatJSON = "json"
)

func AddFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(formatFlag, "f", FormatYAML, "output format: yaml or json")
}

func GetFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString(formatFlag)
	if err != nil {
		return "", fmt.Errorf("get format flag: %w", err)
	}
	switch format {
	case FormatYAML, FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}

// WriteReport renders the report in the given format.
func WriteReport(w io.Writer, report *verrors.ReportNode, format string) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if _, err = fmt.Fprintln(w, string(data)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	default:
		out, err := report.Pretty()
		if err != nil {
			return err
		}
		if _, err = io.WriteString(w, out); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}
