package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/scssgen/internal/lsp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language server on stdin/stdout",
	Long: `Speak the language server protocol on stdin/stdout. The server asks to be
consulted before every save (textDocument/willSaveWaitUntil) and
synchronizes the component's stylesheet there.

Editor settings under "scssStructureGenerate" (scssFilePath, tabSize,
languageId, exclude, respectGitignore) and "editor.tabSize" override the
config file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("log-file", "", "Write logs to this file instead of stderr")
}

func runServe(cmd *cobra.Command, _ []string) error {
	loader, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var path *string
	logFile := loader.String("log-file")
	if logFile != "" {
		path = &logFile
	}
	configureLogging(loader, path)

	if cwd, err := os.Getwd(); err == nil {
		loader.SetWorkspaceRoot(cwd)
	}

	return lsp.NewServer(loader, version).RunStdio()
}
