package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scssgen",
	Short: "Keep SCSS selector structure in sync with component markup",
	Long: `Derives the nested class selectors of a component's <template> and merges
them into its SCSS stylesheet, keeping every hand-written rule body.
The stylesheet is either an external file or the component's own
<style lang="scss"> block.

Run "scssgen serve" from an editor to synchronize on every save.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("quiet", false, "Suppress all output except errors")
	pf.Bool("color", false, "Force color output")
	pf.String("config", ".scssgen.yaml", "Config file path")

	// Synchronization settings
	pf.String("scss-file", "", "Stylesheet path resolved against the component path, e.g. ../index.scss (empty: inline style block)")
	pf.Int("tab-size", 2, "Spaces per nesting level")
	pf.String("language-id", "vue", "Language of the documents to synchronize")
	pf.StringSlice("exclude", nil, "Glob patterns of documents to leave alone")
	pf.Bool("respect-gitignore", true, "Skip documents ignored by the workspace .gitignore")
	pf.String("workspace", "", "Workspace root for exclude patterns and .gitignore")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
