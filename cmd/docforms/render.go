package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-docforms/pkg/forms"
	"github.com/goliatone/go-docforms/pkg/generator"
	"github.com/goliatone/go-docforms/pkg/schema"
)

func renderCmd(logger *zap.Logger) *cobra.Command {
	var (
		output  string
		dynamic bool
	)

	cmd := &cobra.Command{
		Use:   "render <schema.yaml>",
		Short: "Render the edit form for a YAML schema definition",
		Long: `Load a YAML schema definition, derive its form fields, and print
the rendered form body as HTML.

Example:
  docforms render article.yaml -o article.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schema.LoadFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("schema loaded",
				zap.String("schema", s.Name()),
				zap.Int("fields", len(s.Fields())))

			opts := forms.Options{}
			if dynamic {
				opts.Generator = generator.Dynamic()
			}
			form, err := forms.New(s, opts)
			if err != nil {
				return err
			}

			html := form.RenderHTML()
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), html)
				return nil
			}
			if err := os.WriteFile(output, []byte(html+"\n"), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Info("form written", zap.String("path", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&dynamic, "dynamic", false, "render list fields with the repeatable-entry widget")
	return cmd
}
