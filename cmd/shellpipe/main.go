// Command shellpipe runs a declarative series/parallel/shell-task pipeline
// document, exiting 0 on success and 1 on pipeline failure or startup error.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
