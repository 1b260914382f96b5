package savesync

import (
	"strings"
	"sync/atomic"
)

// Config holds the synchronization settings read by every run.
type Config struct {
	ScssFilePath     string   // "../index.scss"; empty selects the inline style block
	TabSize          int      // spaces per nesting level
	LanguageID       string   // "vue"
	Exclude          []string // doublestar globs relative to WorkspaceRoot
	RespectGitignore bool     // skip documents ignored by WorkspaceRoot/.gitignore
	WorkspaceRoot    string   // absolute; empty disables root-relative filtering
}

// Defaults
const (
	DefaultTabSize    = 2
	DefaultLanguageID = "vue"
)

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		TabSize:          DefaultTabSize,
		LanguageID:       DefaultLanguageID,
		Exclude:          []string{"**/node_modules/**"},
		RespectGitignore: true,
	}
}

// InlineMode reports whether results go into the document's own style block.
func (c Config) InlineMode() bool {
	return strings.TrimSpace(c.ScssFilePath) == ""
}

// normalized fills invalid fields with defaults and copies slices.
func (c Config) normalized() Config {
	if c.TabSize < 1 {
		c.TabSize = DefaultTabSize
	}
	if c.LanguageID == "" {
		c.LanguageID = DefaultLanguageID
	}
	c.ScssFilePath = strings.TrimSpace(c.ScssFilePath)
	c.Exclude = append([]string(nil), c.Exclude...)
	return c
}

// ConfigStore holds the current Config. A refresh swaps the whole value, so a
// run that took a Snapshot keeps seeing one consistent configuration.
type ConfigStore struct {
	current atomic.Pointer[Config]
}

// NewConfigStore creates a store holding cfg.
func NewConfigStore(cfg Config) *ConfigStore {
	s := &ConfigStore{}
	s.Replace(cfg)
	return s
}

// Snapshot returns a copy of the current configuration.
func (s *ConfigStore) Snapshot() Config {
	return s.current.Load().normalized()
}

// Replace installs cfg as the current configuration.
func (s *ConfigStore) Replace(cfg Config) {
	cfg = cfg.normalized()
	s.current.Store(&cfg)
}
