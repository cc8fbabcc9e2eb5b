package gen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// WriterMetrics tracks generation performance.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
	RenderTime     time.Duration
	FormatTime     time.Duration
}

// fileTask is a single file to generate.
type fileTask struct {
	name   string // relative to the target directory
	phase  string
	render func() *jen.File
}

// Generate writes the record package to the target directory. Files are
// rendered in parallel, bounded by the configured number of workers.
func (g *Generator) Generate(ctx context.Context) error {
	cfg := g.graph.Config
	if cfg.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	if err := os.MkdirAll(cfg.Target, 0o755); err != nil {
		return NewGenerationError("graph", cfg.Target, "create output directory", err)
	}
	return g.run(ctx, func(t fileTask, src []byte) error {
		path := filepath.Join(cfg.Target, t.name)
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return NewGenerationError(t.phase, t.name, "write file", err)
		}
		return nil
	})
}

// Render returns the formatted sources of the record package keyed by file
// name, without writing them.
func (g *Generator) Render(ctx context.Context) (map[string][]byte, error) {
	files := make(map[string][]byte)
	err := g.run(ctx, func(t fileTask, src []byte) error {
		g.mu.Lock()
		files[t.name] = src
		g.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// run formats every file and hands it to emit.
func (g *Generator) run(ctx context.Context, emit func(fileTask, []byte) error) error {
	logger := g.graph.logger()
	start := time.Now()
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.graph.workers())
	for _, t := range g.tasks() {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			src, err := g.format(t)
			if err != nil {
				return err
			}
			if err := emit(t, src); err != nil {
				return err
			}
			logger.Debug("generated file", "file", t.name, "bytes", len(src))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	m := g.Metrics()
	logger.Info("generated package",
		"package", g.graph.PackageName(),
		"files", m.FilesGenerated,
		"bytes", m.TotalBytes,
		"duration", time.Since(start),
	)
	return nil
}

// format renders a file and runs goimports over it. When formatting fails
// and a target is configured, the unformatted source is written next to the
// file with an .error suffix.
func (g *Generator) format(t fileTask) ([]byte, error) {
	renderStart := time.Now()
	var buf bytes.Buffer
	if err := t.render().Render(&buf); err != nil {
		return nil, NewGenerationError(t.phase, t.name, "render", err)
	}
	renderTime := time.Since(renderStart)

	formatStart := time.Now()
	path := filepath.Join(g.graph.Target, t.name)
	src, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		if g.graph.Target != "" {
			// Errors are ignored: the formatting error is reported.
			_ = os.WriteFile(path+".error", buf.Bytes(), 0o644)
		}
		return nil, NewGenerationError(t.phase, t.name, "format", err)
	}

	g.mu.Lock()
	g.metrics.FilesGenerated++
	g.metrics.TotalBytes += int64(len(src))
	g.metrics.RenderTime += renderTime
	g.metrics.FormatTime += time.Since(formatStart)
	g.mu.Unlock()
	return src, nil
}

// Generate is the convenience function generating the record package of g
// into its target directory.
func Generate(ctx context.Context, g *Graph) error {
	if g == nil || g.Config == nil || g.Config.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	return NewGenerator(g).Generate(ctx)
}
