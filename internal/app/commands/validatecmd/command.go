package validatecmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"

	"github.com/acronis/go-verrors"
	"github.com/acronis/go-verrors/internal/app/command"
	"github.com/acronis/go-verrors/internal/app/commands/reportcmd"
	"github.com/acronis/go-verrors/pkg/errfile"
	"github.com/acronis/go-verrors/pkg/jsonschemax"
	"github.com/acronis/go-verrors/pkg/loghandler"
)

const (
	schemaFlag    = "schema"
	errorsOutFlag = "errors-out"
	messagesFlag  = "messages"
)

type cmd struct {
	schemaPath   string
	documentPath string
	errorsOut    string
	messagesPath string
	format       string
	out          io.Writer
}

func New(ctx context.Context) *cobra.Command {
	c := &cobra.Command{
		Use:   "validate --schema <schema.json> <document.json>",
		Short: "validate a JSON document against a JSON schema and report the errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			format, err := command.GetFormat(c)
			if err != nil {
				return err
			}
			var flags [3]string
			for i, name := range []string{schemaFlag, errorsOutFlag, messagesFlag} {
				if flags[i], err = c.Flags().GetString(name); err != nil {
					return fmt.Errorf("get %s flag: %w", name, err)
				}
			}
			paths, err := command.ResolvePaths(c, flags[0], args[0], flags[1], flags[2])
			if err != nil {
				return err
			}

			return command.Run(ctx, &cmd{
				schemaPath:   paths[0],
				documentPath: paths[1],
				errorsOut:    paths[2],
				messagesPath: paths[3],
				format:       format,
				out:          c.OutOrStdout(),
			})
		},
	}
	command.AddFormatFlag(c)
	c.Flags().StringP(schemaFlag, "s", "", "JSON schema file")
	c.Flags().String(errorsOutFlag, "", "write the errors to this file in the format read by 'report' and 'tree'")
	c.Flags().String(messagesFlag, "", "YAML file with message overrides")
	_ = c.MarkFlagRequired(schemaFlag)
	return c
}

func (c *cmd) Execute(ctx context.Context) error {
	schemaData, err := os.ReadFile(c.schemaPath)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	schema, err := jsonschemax.CompileSchema(schemaData)
	if err != nil {
		return err
	}

	document, err := os.ReadFile(c.documentPath)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	logger := loghandler.New(loghandler.WithLevel(slog.LevelDebug))
	verrors.Start(ctx, logger)
	errs, err := jsonschemax.ValidateWith(schema, gojsonschema.NewBytesLoader(document))
	if err != nil {
		return err
	}
	verrors.Extend(logger, errs)
	verrors.End(ctx, logger)

	if len(errs) == 0 {
		slog.Info("No errors found", slog.String("document", c.documentPath))
		return nil
	}

	if c.errorsOut != "" {
		data, err := errfile.Encode(errs)
		if err != nil {
			return err
		}
		if err = os.WriteFile(c.errorsOut, data, 0o644); err != nil {
			return fmt.Errorf("write errors: %w", err)
		}
	}

	h, err := reportcmd.NewHandler(false, c.messagesPath)
	if err != nil {
		return err
	}
	if err = command.WriteReport(c.out, h.Report(errs), c.format); err != nil {
		return err
	}
	return fmt.Errorf("%w: %d errors in %s: %w", command.ErrInvalidInput, len(errs), c.documentPath, errs.Err())
}
