package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yacobolo/scssgen/internal/savesync"
)

// document is an open text document as last reported by the client.
type document struct {
	uri        protocol.DocumentUri
	path       string
	languageID string
	text       string
	version    protocol.Integer
	dirty      bool
}

func (d *document) Path() string       { return d.path }
func (d *document) LanguageID() string { return d.languageID }
func (d *document) Text() string       { return d.text }
func (d *document) IsDirty() bool      { return d.dirty }
func (d *document) LineCount() int     { return savesync.LineCount(d.text) }

// documentStore tracks open documents by URI.
type documentStore struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentUri]*document
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[protocol.DocumentUri]*document)}
}

func (s *documentStore) open(item protocol.TextDocumentItem) error {
	path, err := uriToPath(item.URI)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[item.URI] = &document{
		uri:        item.URI,
		path:       path,
		languageID: item.LanguageID,
		text:       item.Text,
		version:    item.Version,
	}
	return nil
}

func (s *documentStore) change(uri protocol.DocumentUri, version protocol.Integer, changes []any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return fmt.Errorf("change to unknown document %s", uri)
	}

	for _, raw := range changes {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				doc.text = change.Text
				continue
			}
			doc.text = savesync.ApplyEdit(doc.text, fromProtocolRange(*change.Range), change.Text)
		case protocol.TextDocumentContentChangeEventWhole:
			doc.text = change.Text
		default:
			return fmt.Errorf("unexpected change event type %T", raw)
		}
	}
	doc.version = version
	doc.dirty = true
	return nil
}

// saved marks the document clean, refreshing its text when the client sent it.
func (s *documentStore) saved(uri protocol.DocumentUri, text *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.docs[uri]; ok {
		if text != nil {
			doc.text = *text
		}
		doc.dirty = false
	}
}

func (s *documentStore) close(uri protocol.DocumentUri) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// snapshot returns a copy of the document, safe to read while edits arrive.
func (s *documentStore) snapshot(uri protocol.DocumentUri) (*document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[uri]
	if !ok {
		return nil, false
	}
	cp := *doc
	return &cp, true
}

// uriToPath converts a file URI to a local path.
func uriToPath(uri protocol.DocumentUri) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("failed to parse uri: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported uri scheme %q", u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}

func fromProtocolRange(r protocol.Range) savesync.Range {
	return savesync.Range{
		Start: savesync.Position{Line: int(r.Start.Line), Character: int(r.Start.Character)},
		End:   savesync.Position{Line: int(r.End.Line), Character: int(r.End.Character)},
	}
}
