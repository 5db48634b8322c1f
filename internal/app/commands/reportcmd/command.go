package reportcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/acronis/go-verrors"
	"github.com/acronis/go-verrors/internal/app/command"
	"github.com/acronis/go-verrors/pkg/catalog"
	"github.com/acronis/go-verrors/pkg/errfile"
)

const (
	schemaMessagesFlag = "schema-messages"
	messagesFlag       = "messages"
)

type cmd struct {
	errorsPath     string
	messagesPath   string
	schemaMessages bool
	format         string
	out            io.Writer
}

func New(ctx context.Context) *cobra.Command {
	c := &cobra.Command{
		Use:   "report <errors.json>",
		Short: "render validation errors as a report that mirrors the document structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			format, err := command.GetFormat(c)
			if err != nil {
				return err
			}
			schemaMessages, err := c.Flags().GetBool(schemaMessagesFlag)
			if err != nil {
				return fmt.Errorf("get %s flag: %w", schemaMessagesFlag, err)
			}
			messages, err := c.Flags().GetString(messagesFlag)
			if err != nil {
				return fmt.Errorf("get %s flag: %w", messagesFlag, err)
			}
			paths, err := command.ResolvePaths(c, args[0], messages)
			if err != nil {
				return err
			}

			return command.Run(ctx, &cmd{
				errorsPath:     paths[0],
				messagesPath:   paths[1],
				schemaMessages: schemaMessages,
				format:         format,
				out:            c.OutOrStdout(),
			})
		},
	}
	command.AddFormatFlag(c)
	c.Flags().Bool(schemaMessagesFlag, false, "report errors found in a schema: unknown fields are unknown rules")
	c.Flags().String(messagesFlag, "", "YAML file with message overrides")
	return c
}

func (c *cmd) Execute(ctx context.Context) error {
	errs, err := errfile.ReadFile(c.errorsPath)
	if err != nil {
		return err
	}
	h, err := NewHandler(c.schemaMessages, c.messagesPath)
	if err != nil {
		return err
	}

	slog.Debug("Build report", slog.String("path", c.errorsPath), slog.Int("errors", len(errs)))
	verrors.Start(ctx, h)
	for _, e := range errs {
		h.Add(e)
		verrors.Emit(h, e)
	}
	verrors.End(ctx, h)

	return command.WriteReport(c.out, h.Tree(), c.format)
}

// NewHandler creates the report handler with the selected messages.
func NewHandler(schemaMessages bool, messagesPath string) (*verrors.BasicHandler, error) {
	base := verrors.DefaultCatalog()
	if schemaMessages {
		base = verrors.SchemaCatalog()
	}
	c := base
	if messagesPath != "" {
		var err error
		if c, err = catalog.Load(messagesPath, base); err != nil {
			return nil, fmt.Errorf("load messages: %w", err)
		}
	}
	return verrors.NewBasicHandler(verrors.WithCatalog(c)), nil
}
