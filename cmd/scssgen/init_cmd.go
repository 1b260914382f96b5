package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/scssgen/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .scssgen.yaml config file",
	Long:  `Create a .scssgen.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(config.DefaultFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", config.DefaultFile)
		}

		if err := os.WriteFile(config.DefaultFile, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.DefaultFile)
		return nil
	},
}

const defaultConfig = `# scssgen configuration

verbose: false

sync:
  # Stylesheet path resolved against each component's path, so
  # "../index.scss" is a file next to the component. Leave empty to rewrite
  # the component's own <style lang="scss"> block instead.
  scss-file-path: ""
  language-id: vue
  exclude:
    - "**/node_modules/**"
  respect-gitignore: true

editor:
  tab-size: 2
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
