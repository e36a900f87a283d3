package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Generator renders a validated definition into Go source files, one
// per table plus the package-level tables file.
type Generator struct {
	def     *Definition
	target  string
	header  string
	workers int
}

// Option configures a Generator.
type Option func(*Generator) error

// WithTarget sets the directory the files are written to. It defaults
// to the working directory.
func WithTarget(dir string) Option {
	return func(g *Generator) error {
		if dir == "" {
			return errors.New("quill: target directory cannot be empty")
		}
		g.target = dir
		return nil
	}
}

// WithHeader adds a comment line under the generated-code marker of
// every emitted file, typically a license notice.
func WithHeader(header string) Option {
	return func(g *Generator) error {
		g.header = header
		return nil
	}
}

// WithWorkers caps how many files are rendered and written at once.
func WithWorkers(n int) Option {
	return func(g *Generator) error {
		if n < 1 {
			return fmt.Errorf("quill: workers must be positive, got %d", n)
		}
		g.workers = n
		return nil
	}
}

// NewGenerator returns a generator for the given definition. The
// definition must have been validated; Load and Parse take care of
// that.
func NewGenerator(def *Definition, opts ...Option) (*Generator, error) {
	g := &Generator{
		def:     def,
		target:  ".",
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Generate writes the generated package to the target directory. Files
// are rendered and written in parallel; the first failure cancels the
// remaining work.
func (g *Generator) Generate(ctx context.Context) error {
	if err := os.MkdirAll(g.target, 0o755); err != nil {
		return NewGenerationError(g.target, err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i := range g.def.Tables {
		t := &g.def.Tables[i]
		eg.Go(func() error {
			return g.write(ctx, fileName(t.Name), g.entityFile(t))
		})
	}
	eg.Go(func() error {
		return g.write(ctx, "tables.go", g.tablesFile())
	})
	return eg.Wait()
}

// write renders f, runs the source through goimports and writes it to
// the target directory. Source that fails to format is kept next to
// the target with an .error suffix for inspection.
func (g *Generator) write(ctx context.Context, name string, f *jen.File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return NewGenerationError(name, err)
	}
	path := filepath.Join(g.target, name)
	src, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		_ = os.WriteFile(path+".error", buf.Bytes(), 0o644)
		return NewGenerationError(name, err)
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return NewGenerationError(name, err)
	}
	return nil
}

// Generate loads the definition at defPath and writes the generated
// package in one call.
func Generate(ctx context.Context, defPath string, opts ...Option) error {
	def, err := Load(defPath)
	if err != nil {
		return err
	}
	g, err := NewGenerator(def, opts...)
	if err != nil {
		return err
	}
	return g.Generate(ctx)
}
