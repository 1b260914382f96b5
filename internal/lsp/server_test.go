package lsp

import (
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yacobolo/scssgen/internal/config"
	"github.com/yacobolo/scssgen/internal/savesync"
)

const componentText = `<template>
  <div class="card">
    <p class="card__body">x</p>
  </div>
</template>
`

type notification struct {
	method string
	params any
}

type testClient struct {
	mu   sync.Mutex
	sent []notification
}

func (c *testClient) notify(method string, params any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, notification{method, params})
}

func (c *testClient) all() []notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]notification(nil), c.sent...)
}

func fileURI(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func newTestServer(t *testing.T, root string) (*Server, *glsp.Context, *testClient) {
	t.Helper()
	client := &testClient{}
	ctx := &glsp.Context{Notify: client.notify}

	s := NewServer(config.New(), "test")
	rootURI := fileURI(root)
	_, err := s.initialize(ctx, &protocol.InitializeParams{RootURI: &rootURI})
	require.NoError(t, err)
	return s, ctx, client
}

func openAndEdit(t *testing.T, s *Server, ctx *glsp.Context, uri, text string) {
	t.Helper()
	require.NoError(t, s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "vue", Version: 1, Text: ""},
	}))
	require.NoError(t, s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}, Version: 2},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: text}},
	}))
}

func willSave(t *testing.T, s *Server, ctx *glsp.Context, uri string) []protocol.TextEdit {
	t.Helper()
	edits, err := s.textDocumentWillSaveWaitUntil(ctx, &protocol.WillSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Reason:       protocol.TextDocumentSaveReasonManual,
	})
	require.NoError(t, err)
	return edits
}

func TestInitializeCapabilities(t *testing.T) {
	s := NewServer(config.New(), "1.2.3")
	result, err := s.initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	res, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	syncOpts, ok := res.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.True(t, *syncOpts.WillSaveWaitUntil)
	assert.Equal(t, protocol.TextDocumentSyncKindIncremental, *syncOpts.Change)
	assert.Equal(t, "1.2.3", *res.ServerInfo.Version)
}

func TestWillSaveInline(t *testing.T) {
	root := t.TempDir()
	s, ctx, _ := newTestServer(t, root)
	uri := fileURI(filepath.Join(root, "Card.vue"))

	openAndEdit(t, s, ctx, uri, componentText)
	edits := willSave(t, s, ctx, uri)

	require.Len(t, edits, 1)
	assert.Equal(t, componentText+"\n<style lang=\"scss\">\n.card {\n  .card__body {\n  }\n}\n</style>\n", edits[0].NewText)
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, edits[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 5, Character: 0}, edits[0].Range.End, "range stays inside the document")
}

func TestWillSaveCleanDocument(t *testing.T) {
	root := t.TempDir()
	s, ctx, _ := newTestServer(t, root)
	uri := fileURI(filepath.Join(root, "Card.vue"))

	require.NoError(t, s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "vue", Version: 1, Text: componentText},
	}))
	assert.Empty(t, willSave(t, s, ctx, uri))
}

func TestWillSaveAfterSaveIsClean(t *testing.T) {
	root := t.TempDir()
	s, ctx, _ := newTestServer(t, root)
	uri := fileURI(filepath.Join(root, "Card.vue"))

	openAndEdit(t, s, ctx, uri, componentText)
	require.NoError(t, s.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	assert.Empty(t, willSave(t, s, ctx, uri))
}

func TestWillSaveUnknownDocument(t *testing.T) {
	s, ctx, _ := newTestServer(t, t.TempDir())
	assert.Empty(t, willSave(t, s, ctx, "file:///nowhere/X.vue"))
}

func TestWillSaveExternal(t *testing.T) {
	root := t.TempDir()
	s, ctx, _ := newTestServer(t, root)
	require.NoError(t, s.workspaceDidChangeConfiguration(ctx, &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{
			"scssStructureGenerate": map[string]any{"scssFilePath": "../card.scss"},
		},
	}))

	uri := fileURI(filepath.Join(root, "Card.vue"))
	openAndEdit(t, s, ctx, uri, componentText)

	assert.Empty(t, willSave(t, s, ctx, uri), "external mode never edits the document")
	require.NoError(t, s.shutdown(ctx))

	data, err := os.ReadFile(filepath.Join(root, "card.scss"))
	require.NoError(t, err)
	assert.Equal(t, ".card {\n  .card__body {\n  }\n}\n", string(data))
}

func TestWriteFailureShowsMessage(t *testing.T) {
	root := t.TempDir()
	s, ctx, client := newTestServer(t, root)
	require.NoError(t, s.workspaceDidChangeConfiguration(ctx, &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{
			"scssStructureGenerate": map[string]any{"scssFilePath": "../missing/card.scss"},
		},
	}))

	uri := fileURI(filepath.Join(root, "Card.vue"))
	openAndEdit(t, s, ctx, uri, componentText)
	willSave(t, s, ctx, uri)
	require.NoError(t, s.shutdown(ctx))

	sent := client.all()
	require.Len(t, sent, 1)
	assert.Equal(t, protocol.ServerWindowShowMessage, sent[0].method)
	msg, ok := sent[0].params.(protocol.ShowMessageParams)
	require.True(t, ok)
	assert.Equal(t, protocol.MessageTypeError, msg.Type)
	assert.Contains(t, msg.Message, "Failed to write stylesheet")
}

func TestConfigurationIgnoresUnknownShape(t *testing.T) {
	s, ctx, _ := newTestServer(t, t.TempDir())
	require.NoError(t, s.workspaceDidChangeConfiguration(ctx, &protocol.DidChangeConfigurationParams{Settings: "nope"}))
	assert.True(t, s.store.Snapshot().InlineMode())
}

func TestDocumentStoreIncrementalChange(t *testing.T) {
	store := newDocumentStore()
	require.NoError(t, store.open(protocol.TextDocumentItem{URI: "file:///a.vue", LanguageID: "vue", Text: "hello\nworld"}))

	err := store.change("file:///a.vue", 2, []any{
		protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 1, Character: 0},
				End:   protocol.Position{Line: 1, Character: 5},
			},
			Text: "there",
		},
	})
	require.NoError(t, err)

	doc, ok := store.snapshot("file:///a.vue")
	require.True(t, ok)
	assert.Equal(t, "hello\nthere", doc.Text())
	assert.True(t, doc.IsDirty())
	assert.Equal(t, "/a.vue", doc.Path())
}

func TestDocumentStoreErrors(t *testing.T) {
	store := newDocumentStore()
	assert.Error(t, store.change("file:///missing.vue", 1, nil))
	assert.Error(t, store.open(protocol.TextDocumentItem{URI: "untitled:Untitled-1"}))
}

func TestClampRange(t *testing.T) {
	text := "a\nbé\n"
	rng := clampRange(text, savesync.FullRange(savesync.LineCount(text)))
	assert.Equal(t, protocol.Position{Line: 2, Character: 0}, rng.End)

	rng = clampRange("a\nbé", savesync.FullRange(2))
	assert.Equal(t, protocol.Position{Line: 1, Character: 2}, rng.End)
}
