package savesync

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Writer persists generated stylesheets to their external file. Writes run in
// the background so they never hold up the save of the document itself.
type Writer struct {
	notifier Notifier
	wg       sync.WaitGroup
}

// NewWriter creates a Writer reporting failures to notifier (may be nil).
func NewWriter(notifier Notifier) *Writer {
	return &Writer{notifier: notifier}
}

// Write stores text at the stylesheet configured by rel for the document at
// documentPath. Empty text writes nothing. An empty rel means there is no
// external stylesheet: fallback runs instead, synchronously.
func (w *Writer) Write(documentPath, rel, text string, fallback func()) {
	if text == "" {
		log.Debugf("empty stylesheet for %s, nothing to write", documentPath)
		return
	}
	if rel == "" {
		if fallback != nil {
			fallback()
		}
		return
	}

	path := ResolvePath(documentPath, rel)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		if err := writeFileAtomic(path, []byte(text)); err != nil {
			log.Errorf("write stylesheet %s: %v", path, err)
			if w.notifier != nil {
				w.notifier.ShowError(fmt.Sprintf("Failed to write stylesheet: %v", err))
			}
			return
		}
		log.Infof("wrote stylesheet %s", path)
	}()
}

// Wait blocks until every background write has finished.
func (w *Writer) Wait() {
	w.wg.Wait()
}

// writeFileAtomic replaces path with data via a temporary file in the same
// directory, so readers see either the old or the new content in full.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".scssgen-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
