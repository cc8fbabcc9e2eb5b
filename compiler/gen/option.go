package gen

import (
	"errors"
	"go/token"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/turner-townsend/genyrator/naming"
)

// DefaultHeader is written at the top of every generated file.
const DefaultHeader = "// Code generated by genyrator, DO NOT EDIT."

// Config holds the configuration of graph building and code generation.
type Config struct {
	// Convention translates identifiers between the internal and the
	// external form. The zero value is naming.Snake().
	Convention naming.Convention
	// StrictCascade rejects cascade delete policies other than true, false
	// and "all" instead of coercing them to CascadeNone.
	StrictCascade bool
	// Package is the name of the generated Go package.
	// Defaults to the base name of Target.
	Package string
	// Target is the output directory of generated files.
	Target string
	// Header is the comment written at the top of generated files.
	Header string
	// Workers limits the number of files generated in parallel.
	Workers int
	// Logger receives generation progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// Option configures graph building and code generation.
type Option func(*Config) error

// WithConvention sets the identifier naming convention.
func WithConvention(conv naming.Convention) Option {
	return func(c *Config) error {
		c.Convention = conv
		return nil
	}
}

// WithStrictCascade rejects unknown cascade delete policies.
func WithStrictCascade() Option {
	return func(c *Config) error {
		c.StrictCascade = true
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the name of the generated package.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(pkg) {
			return NewConfigError("Package", pkg, "package must be a valid Go identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger used during generation.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PackageName returns the name of the generated package.
func (c *Config) PackageName() string {
	if c.Package != "" {
		return c.Package
	}
	if c.Target != "" {
		if base := filepath.Base(c.Target); token.IsIdentifier(base) {
			return base
		}
	}
	return "models"
}

func (c *Config) header() string {
	if c.Header != "" {
		return c.Header
	}
	return DefaultHeader
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// relationshipOptions returns the relationship options implied by c.
func (c *Config) relationshipOptions() []RelationshipOption {
	if c.StrictCascade {
		return []RelationshipOption{StrictCascade()}
	}
	return nil
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
