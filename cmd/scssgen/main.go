// Package main provides the scssgen CLI: a language server that keeps SCSS
// selector structure in step with component markup on save, plus commands to
// run the same synchronization from a shell.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
