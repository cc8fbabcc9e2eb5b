package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/turner-townsend/genyrator/compiler/gen"
	"github.com/turner-townsend/genyrator/compiler/load"
	"github.com/turner-townsend/genyrator/naming"
)

// globals are the flags shared by every command.
type globals struct {
	schema    string
	delimiter string
	strict    bool
	verbose   bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:           "genyrator",
		Short:         "Generate record packages from entity schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&g.schema, "schema", "s", "schema", "directory of schema files")
	flags.StringVar(&g.delimiter, "delimiter", "_", "word delimiter of internal names")
	flags.BoolVar(&g.strict, "strict-cascade", false, "reject cascade delete policies other than true, false and all")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "log debug messages")
	cmd.AddCommand(
		newGenerateCmd(g),
		newDescribeCmd(g),
		newConvertCmd(g),
	)
	return cmd
}

// logger returns a text logger writing to w.
func (g *globals) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// convention returns the naming convention selected by --delimiter.
func (g *globals) convention() (naming.Convention, error) {
	if len(g.delimiter) != 1 {
		return naming.Convention{}, gen.NewConfigError("delimiter", g.delimiter, "delimiter must be a single character")
	}
	return naming.New(g.delimiter[0])
}

// graph loads the schema directory and builds its graph.
func (g *globals) graph(opts ...gen.Option) (*gen.Graph, error) {
	conv, err := g.convention()
	if err != nil {
		return nil, err
	}
	opts = append([]gen.Option{gen.WithConvention(conv)}, opts...)
	if g.strict {
		opts = append(opts, gen.WithStrictCascade())
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	schemas, err := load.ReadDir(g.schema)
	if err != nil {
		return nil, err
	}
	return gen.NewGraph(cfg, schemas...)
}
