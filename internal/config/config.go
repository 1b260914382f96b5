// Package config assembles the synchronization settings from the config file,
// environment, editor settings and command-line flags.
//
// Precedence: flags > editor settings > env > file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/yacobolo/scssgen/internal/savesync"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = ".scssgen.yaml"

// EnvPrefix prefixes every environment variable read.
const EnvPrefix = "SCSSGEN_"

// Editor settings keys.
const (
	SettingsSection  = "scssStructureGenerate"
	SettingScssPath  = SettingsSection + ".scssFilePath"
	SettingEditorTab = "editor.tabSize"
)

// Loader holds one koanf instance per source so editor settings can be
// replaced wholesale without touching the rest.
type Loader struct {
	mu       sync.RWMutex
	base     *koanf.Koanf // file + env
	settings *koanf.Koanf
	flags    *koanf.Koanf
	root     string
}

// New creates an empty Loader.
func New() *Loader {
	return &Loader{
		base:     koanf.New("."),
		settings: koanf.New("."),
		flags:    koanf.New("."),
	}
}

// LoadFile loads a YAML config file. A missing file is not an error.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.base.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

// LoadEnv loads SCSSGEN_* environment variables.
func (l *Loader) LoadEnv() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.base.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}
	return nil
}

// envKey maps an environment variable to a config key. The first underscore
// separates the section, the rest become hyphens:
//
//	SCSSGEN_SYNC_SCSS_FILE_PATH -> sync.scss-file-path
//	SCSSGEN_VERBOSE             -> verbose
func envKey(name, value string) (string, interface{}) {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if section, rest, ok := strings.Cut(key, "_"); ok {
		key = section + "." + strings.ReplaceAll(rest, "_", "-")
	}

	if key == "sync.exclude" {
		return key, splitList(value)
	}
	return key, value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadFlags loads the flags that were set explicitly on the command line.
func (l *Loader) LoadFlags(fs *pflag.FlagSet) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	provider := posflag.ProviderWithFlag(fs, ".", l.flags, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	})
	if err := l.flags.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}
	return nil
}

// SetSettings replaces the editor settings. Keys may be nested maps or dotted
// ("editor.tabSize").
func (l *Loader) SetSettings(settings map[string]interface{}) error {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(settings, "."), nil); err != nil {
		return fmt.Errorf("loading editor settings: %w", err)
	}

	l.mu.Lock()
	l.settings = k
	l.mu.Unlock()
	return nil
}

// SetWorkspaceRoot sets the root used when no flag or file names one.
func (l *Loader) SetWorkspaceRoot(root string) {
	l.mu.Lock()
	l.root = root
	l.mu.Unlock()
}

// source is one place a setting may come from.
type source struct {
	k   *koanf.Koanf
	key string
}

// lookup returns the first source holding a value.
func lookup(sources ...source) (source, bool) {
	for _, s := range sources {
		if s.k.Exists(s.key) {
			return s, true
		}
	}
	return source{}, false
}

// Build resolves the current synchronization config.
func (l *Loader) Build() savesync.Config {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cfg := savesync.DefaultConfig()

	if s, ok := lookup(
		source{l.flags, "scss-file"},
		source{l.settings, SettingScssPath},
		source{l.base, "sync.scss-file-path"},
	); ok {
		cfg.ScssFilePath = s.k.String(s.key)
	}

	if s, ok := lookup(
		source{l.flags, "tab-size"},
		source{l.settings, SettingsSection + ".tabSize"},
		source{l.settings, SettingEditorTab},
		source{l.base, "sync.tab-size"},
		source{l.base, "editor.tab-size"},
	); ok {
		cfg.TabSize = s.k.Int(s.key)
	}

	if s, ok := lookup(
		source{l.flags, "language-id"},
		source{l.settings, SettingsSection + ".languageId"},
		source{l.base, "sync.language-id"},
	); ok {
		cfg.LanguageID = s.k.String(s.key)
	}

	if s, ok := lookup(
		source{l.flags, "exclude"},
		source{l.settings, SettingsSection + ".exclude"},
		source{l.base, "sync.exclude"},
	); ok {
		cfg.Exclude = s.k.Strings(s.key)
	}

	if s, ok := lookup(
		source{l.flags, "respect-gitignore"},
		source{l.settings, SettingsSection + ".respectGitignore"},
		source{l.base, "sync.respect-gitignore"},
	); ok {
		cfg.RespectGitignore = s.k.Bool(s.key)
	}

	if s, ok := lookup(
		source{l.flags, "workspace"},
		source{l.base, "sync.workspace"},
	); ok {
		cfg.WorkspaceRoot = s.k.String(s.key)
	} else {
		cfg.WorkspaceRoot = l.root
	}

	return cfg
}

// Bool reports a global option (verbose, quiet, color) from flags, then file and env.
func (l *Loader) Bool(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if s, ok := lookup(source{l.flags, key}, source{l.base, key}); ok {
		return s.k.Bool(s.key)
	}
	return false
}

// String reports a global option from flags, then file and env.
func (l *Loader) String(key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if s, ok := lookup(source{l.flags, key}, source{l.base, key}); ok {
		return s.k.String(s.key)
	}
	return ""
}
