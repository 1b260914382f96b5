package savesync

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// pathFilter decides whether a document is out of scope by path.
//
// Two layers:
// 1. Exclude globs (doublestar, relative to the workspace root)
// 2. The workspace .gitignore, when enabled
type pathFilter struct {
	mu       sync.Mutex
	ignores  map[string]*ignore.GitIgnore // workspace root -> compiled .gitignore (nil if none)
	compiled map[string]bool
}

func newPathFilter() *pathFilter {
	return &pathFilter{
		ignores:  make(map[string]*ignore.GitIgnore),
		compiled: make(map[string]bool),
	}
}

// excluded returns a reason when path must not be synchronized.
func (f *pathFilter) excluded(path string, cfg Config) (string, bool) {
	rel, inRoot := relativeTo(cfg.WorkspaceRoot, path)

	for _, pattern := range cfg.Exclude {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			log.Warningf("bad exclude pattern %q: %v", pattern, err)
			continue
		}
		if matched {
			return "excluded by " + pattern, true
		}
	}

	if cfg.RespectGitignore && inRoot {
		if gi := f.gitignore(cfg.WorkspaceRoot); gi != nil && gi.MatchesPath(rel) {
			return "ignored by .gitignore", true
		}
	}

	return "", false
}

// gitignore loads the root's .gitignore once. A missing file is cached as nil.
func (f *pathFilter) gitignore(root string) *ignore.GitIgnore {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.compiled[root] {
		return f.ignores[root]
	}
	f.compiled[root] = true

	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		// no .gitignore is fine
		return nil
	}
	f.ignores[root] = gi
	return gi
}

// relativeTo returns path relative to root in slash form, and whether path is inside root.
// Paths outside root (or with no root) are returned whole.
func relativeTo(root, path string) (string, bool) {
	if root == "" {
		return filepath.ToSlash(path), false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path), false
	}
	return filepath.ToSlash(rel), true
}
