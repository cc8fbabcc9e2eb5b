package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/turner-townsend/genyrator/document"
)

func newConvertCmd(g *globals) *cobra.Command {
	var (
		internal bool
		from     string
		to       string
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Rename the keys of a document read from stdin",
		Long: "Convert reads a document from stdin and renames every key at any depth, " +
			"to the external convention by default or to the internal one with --internal.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conv, err := g.convention()
			if err != nil {
				return err
			}
			in, err := document.ParseFormat(from)
			if err != nil {
				return err
			}
			out, err := document.ParseFormat(to)
			if err != nil {
				return err
			}
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			doc, err := document.Unmarshal(data, in)
			if err != nil {
				return err
			}
			var converted any
			if internal {
				converted = document.FromDocument(conv, doc)
			} else {
				converted = conv.ToExternalStructure(doc)
			}
			if out == document.FormatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(converted)
			}
			b, err := document.Marshal(converted, out)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&internal, "internal", false, "convert keys to the internal convention")
	flags.StringVar(&from, "from", "json", "input format: json or msgpack")
	flags.StringVar(&to, "to", "json", "output format: json or msgpack")
	return cmd
}
