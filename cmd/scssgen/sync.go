package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/scssgen/internal/report"
	"github.com/yacobolo/scssgen/internal/savesync"
)

var syncCmd = &cobra.Command{
	Use:   "sync FILE",
	Short: "Synchronize the stylesheet of a component now",
	Long: `Run the save synchronization for a component as if it were being saved in
the editor. An inline style block is rewritten in place; an external
stylesheet path is resolved against the component path, so ../index.scss
is a file next to the component.`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	loader, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	configureLogging(loader, nil)

	if cwd, err := os.Getwd(); err == nil {
		loader.SetWorkspaceRoot(cwd)
	}

	reporter := report.NewReporter(cmd.OutOrStdout(), report.Options{
		UseColors: loader.Bool("color"),
		Quiet:     loader.Bool("quiet"),
	})

	// read only after writer.Wait
	failures := 0
	writer := savesync.NewWriter(savesync.NotifierFunc(func(message string) {
		failures++
		reporter.PrintError(errors.New(message))
	}))
	interceptor := savesync.NewInterceptor(
		savesync.NewConfigStore(loader.Build()),
		savesync.NewProcessor(nil, savesync.NewResolver()),
		writer,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	doc, err := openFileDocument(args[0])
	if err != nil {
		return err
	}

	task := interceptor.OnWillSave(ctx, savesync.WillSaveEvent{Document: doc, Editor: doc})
	if err := task.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	// inline edits are persisted before the external write is awaited
	if err := doc.persist(); err != nil {
		return err
	}

	writer.Wait()
	if failures > 0 {
		return fmt.Errorf("writing stylesheet for %s failed", args[0])
	}
	reporter.PrintOutcome(task.Outcome())
	return nil
}

// fileDocument is a component read from disk. It is its own editor: edits
// apply to the in-memory text and persist writes them back.
type fileDocument struct {
	path   string
	text   string
	edited bool
	mode   os.FileMode
}

func openFileDocument(name string) (*fileDocument, error) {
	path, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", name, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 - path is a command-line argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &fileDocument{path: path, text: string(data), mode: info.Mode().Perm()}, nil
}

func (d *fileDocument) Path() string { return d.path }

// LanguageID is the file extension: "Card.vue" is "vue".
func (d *fileDocument) LanguageID() string {
	return strings.TrimPrefix(filepath.Ext(d.path), ".")
}

func (d *fileDocument) Text() string { return d.text }

// IsDirty is always true: an explicit sync is a save with pending changes.
func (d *fileDocument) IsDirty() bool { return true }

func (d *fileDocument) LineCount() int { return savesync.LineCount(d.text) }

func (d *fileDocument) Replace(_ savesync.Document, rng savesync.Range, text string) <-chan error {
	d.text = savesync.ApplyEdit(d.text, rng, text)
	d.edited = true

	done := make(chan error, 1)
	done <- nil
	return done
}

func (d *fileDocument) persist() error {
	if !d.edited {
		return nil
	}
	if err := os.WriteFile(d.path, []byte(d.text), d.mode); err != nil {
		return fmt.Errorf("writing %s: %w", d.path, err)
	}
	return nil
}
