package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/scssgen"
	"github.com/yacobolo/scssgen/internal/report"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "List the class selectors a stylesheet opens",
	Long: `Print every class name that opens a rule (".name {") in a stylesheet, in
order of appearance. For a component file the SCSS style block is read.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// #nosec G304 - path is a command-line argument
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		text := string(data)
		if block, ok := scssgen.StyleBlockContent(text); ok {
			text = block
		}

		color, _ := cmd.Flags().GetBool("color")
		reporter := report.NewReporter(cmd.OutOrStdout(), report.Options{UseColors: color})
		reporter.PrintClassNames(scssgen.ExtractClassNames(text))
		return nil
	},
}
