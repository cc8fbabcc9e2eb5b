package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/turner-townsend/genyrator/compiler/gen"
)

func newGenerateCmd(g *globals) *cobra.Command {
	var (
		target   string
		pkg      string
		header   string
		workers  int
		watch    bool
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the record package of a schema directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := g.logger(cmd.ErrOrStderr())
			opts := []gen.Option{gen.WithTarget(target), gen.WithLogger(logger)}
			if pkg != "" {
				opts = append(opts, gen.WithPackage(pkg))
			}
			if header != "" {
				opts = append(opts, gen.WithHeader(header))
			}
			if workers > 0 {
				opts = append(opts, gen.WithWorkers(workers))
			}
			run := func(ctx context.Context) error {
				graph, err := g.graph(opts...)
				if err != nil {
					return err
				}
				return gen.Generate(ctx, graph)
			}
			if !watch {
				return run(cmd.Context())
			}
			w := &watcher{dir: g.schema, debounce: debounce, logger: logger}
			return w.run(cmd.Context(), run)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&target, "target", "t", "models", "output directory")
	flags.StringVarP(&pkg, "package", "p", "", "name of the generated package (default: base name of target)")
	flags.StringVar(&header, "header", "", "comment written at the top of generated files")
	flags.IntVar(&workers, "workers", 0, "files generated in parallel (default: GOMAXPROCS)")
	flags.BoolVarP(&watch, "watch", "w", false, "regenerate when schema files change")
	flags.DurationVar(&debounce, "debounce", 200*time.Millisecond, "delay before regenerating in watch mode")
	return cmd
}
