package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/yacobolo/scssgen/internal/config"
)

// loadConfig builds a Loader with precedence: flags > env > file > defaults.
// Editor settings are layered in later by the language server.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) (*config.Loader, error) {
	loader := config.New()

	configPath, _ := cmd.Flags().GetString("config")
	if err := loader.LoadFile(configPath); err != nil {
		return nil, err
	}
	if err := loader.LoadEnv(); err != nil {
		return nil, err
	}
	if err := loader.LoadFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	return loader, nil
}

// configureLogging sets up commonlog for the CLI and for glsp. A nil path
// logs to stderr.
func configureLogging(loader *config.Loader, path *string) {
	verbosity := 0
	switch {
	case loader.Bool("verbose"):
		verbosity = 4
	case loader.Bool("quiet"):
		verbosity = -1
	}
	commonlog.Configure(verbosity, path)
}
