package treecmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/acronis/go-verrors"
	"github.com/acronis/go-verrors/internal/app/command"
	"github.com/acronis/go-verrors/pkg/errfile"
)

const (
	pathFlag   = "path"
	schemaFlag = "schema"
)

type errorView struct {
	DocumentPath string `json:"document_path" yaml:"document_path"`
	SchemaPath   string `json:"schema_path" yaml:"schema_path"`
	Code         string `json:"code" yaml:"code"`
	Rule         string `json:"rule,omitempty" yaml:"rule,omitempty"`
	Message      string `json:"message,omitempty" yaml:"message,omitempty"`
}

type nodeView struct {
	Path        string      `json:"path" yaml:"path"`
	Errors      []errorView `json:"errors,omitempty" yaml:"errors,omitempty"`
	Descendants []string    `json:"descendants,omitempty" yaml:"descendants,omitempty"`
}

type cmd struct {
	errorsPath string
	path       verrors.Path
	treeType   verrors.TreeType
	format     string
	out        io.Writer
}

func New(ctx context.Context) *cobra.Command {
	c := &cobra.Command{
		Use:   "tree <errors.json>",
		Short: "show the errors located at a document or schema path",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			format, err := command.GetFormat(c)
			if err != nil {
				return err
			}
			path, err := c.Flags().GetString(pathFlag)
			if err != nil {
				return fmt.Errorf("get %s flag: %w", pathFlag, err)
			}
			schema, err := c.Flags().GetBool(schemaFlag)
			if err != nil {
				return fmt.Errorf("get %s flag: %w", schemaFlag, err)
			}
			paths, err := command.ResolvePaths(c, args[0])
			if err != nil {
				return err
			}

			treeType := verrors.DocumentTree
			if schema {
				treeType = verrors.SchemaTree
			}
			return command.Run(ctx, &cmd{
				errorsPath: paths[0],
				path:       verrors.ParsePath(path),
				treeType:   treeType,
				format:     format,
				out:        c.OutOrStdout(),
			})
		},
	}
	command.AddFormatFlag(c)
	c.Flags().StringP(pathFlag, "p", "", "dot-separated path of the node, e.g. items.1.name; empty for the root")
	c.Flags().Bool(schemaFlag, false, "index the errors by schema path instead of document path")
	return c
}

func (c *cmd) Execute(_ context.Context) error {
	errs, err := errfile.ReadFile(c.errorsPath)
	if err != nil {
		return err
	}

	tree := verrors.NewErrorTree(c.treeType, errs)
	node, ok := tree.FetchNodeFrom(c.path)
	if !ok {
		return fmt.Errorf("%w: no errors at %s path %q", command.ErrInvalidInput, c.treeType, c.path)
	}

	view := nodeView{Path: node.Path().String()}
	for _, e := range node.Errors() {
		msg, _ := verrors.DefaultCatalog().Message(e)
		view.Errors = append(view.Errors, errorView{
			DocumentPath: e.DocumentPath.String(),
			SchemaPath:   e.SchemaPath.String(),
			Code:         e.Code.String(),
			Rule:         e.Rule,
			Message:      msg,
		})
	}
	for _, seg := range node.Descendants() {
		view.Descendants = append(view.Descendants, seg.String())
	}

	return write(c.out, view, c.format)
}

func write(w io.Writer, view nodeView, format string) error {
	var (
		data []byte
		err  error
	)
	if format == command.FormatJSON {
		data, err = json.MarshalIndent(view, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(view)
	}
	if err != nil {
		return fmt.Errorf("marshal node: %w", err)
	}
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("write node: %w", err)
	}
	return nil
}
