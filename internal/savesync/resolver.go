package savesync

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// ResolvePath resolves the configured stylesheet path against the document
// path itself, so "../index.scss" names a file next to the document.
// Absolute configured paths are returned cleaned.
func ResolvePath(documentPath, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(documentPath, rel)
}

// Resolver reads the external stylesheet of a document.
type Resolver struct {
	readFile func(name string) ([]byte, error)
}

// NewResolver creates a Resolver reading from the local file system.
func NewResolver() *Resolver {
	return &Resolver{readFile: os.ReadFile}
}

// Read returns the stylesheet text and whether the file could be read.
// Failures are logged, never returned: a missing or unreadable file reads as
// ("", false), which callers treat as no prior content.
func (r *Resolver) Read(documentPath, rel string) (string, bool) {
	path := ResolvePath(documentPath, rel)

	// #nosec G304 - path comes from the user's own configuration
	data, err := r.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Infof("stylesheet %s does not exist yet", path)
		} else {
			log.Warningf("read stylesheet %s: %v", path, err)
		}
		return "", false
	}
	return string(data), true
}
