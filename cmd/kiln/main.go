// Command kiln is the admin tool for kiln build-description generator
// binaries: scaffolding (init), environment introspection (doctor), and
// dependency-graph visualization (graph). Grounded on cmd/bob/main.go's
// composition-root shape (zerr-aware error printing via %+v, os.Exit(1)
// on failure).
package main

import (
	"context"
	"fmt"
	"os"

	"go.kiln.build/kiln/cmd/kiln/commands"
)

func main() {
	if err := run(); err != nil {
		// zerr prints a pretty error report with stack trace and metadata when using %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli := commands.New()
	return cli.Execute(context.Background())
}
