// Command panel renders widgets and document pages in the terminal and
// builds the document site to static files.
package main

import (
	"fmt"
	"os"

	"github.com/okian/panelkit/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
