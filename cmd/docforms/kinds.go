package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docforms/pkg/generator"
	"github.com/goliatone/go-docforms/pkg/schema"
)

func kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "Print the schema kind to form field mapping",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := generator.Default()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tFORM FIELD")
			for _, kind := range schema.Kinds() {
				fmt.Fprintf(w, "%s\t%s\n", kind, fieldTypeFor(gen, kind))
			}
			return w.Flush()
		},
	}
}

// fieldTypeFor probes the generator with a minimal descriptor of the kind.
func fieldTypeFor(gen *generator.Generator, kind schema.Kind) string {
	descriptor := &schema.Field{Name: "sample", Kind: kind}
	switch kind.Normalize() {
	case schema.KindList, schema.KindMap:
		descriptor.Elem = &schema.Field{Kind: schema.KindString, MaxLength: 64}
	case schema.KindString:
		descriptor.MaxLength = 64
	case schema.KindEmbedded:
		descriptor.Embedded = schema.MustNew("sample")
	}

	field, err := gen.Generate(descriptor)
	if err != nil {
		return "(error)"
	}
	if field == nil {
		return "(no form field)"
	}
	return fmt.Sprintf("%T", field)
}
