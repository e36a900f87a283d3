// quillgen generates entity declarations from a YAML table definition.
//
// Run: quillgen -def tables.yaml -target ./model
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/syssam/quill/gen"
)

var (
	def     = flag.String("def", "tables.yaml", "definition file to generate from")
	target  = flag.String("target", ".", "directory the generated files are written to")
	header  = flag.String("header", "", "extra header comment for generated files")
	workers = flag.Int("workers", 0, "parallel file writers (0 uses all CPUs)")
	watch   = flag.Bool("watch", false, "keep running and regenerate on definition changes")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []gen.Option{gen.WithTarget(*target)}
	if *header != "" {
		opts = append(opts, gen.WithHeader(*header))
	}
	if *workers > 0 {
		opts = append(opts, gen.WithWorkers(*workers))
	}

	var err error
	if *watch {
		err = gen.Watch(ctx, *def, opts...)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = gen.Generate(ctx, *def, opts...)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "quillgen:", err)
		os.Exit(1)
	}
}
