// Package lsp exposes the save synchronization as a language server. The
// client's textDocument/willSaveWaitUntil request carries the save deferral:
// its response holds the inline style block rewrite, if any.
package lsp

import (
	"time"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/yacobolo/scssgen/internal/config"
	"github.com/yacobolo/scssgen/internal/savesync"
)

// Name is reported to the client.
const Name = "scssgen"

// willSaveTimeout bounds how long a save waits for the synchronization.
const willSaveTimeout = 5 * time.Second

var log = commonlog.GetLogger("scssgen.lsp")

// Server handles the language server protocol for one client.
type Server struct {
	version     string
	handler     *protocol.Handler
	loader      *config.Loader
	store       *savesync.ConfigStore
	writer      *savesync.Writer
	interceptor *savesync.Interceptor
	docs        *documentStore
	notifier    *notifier
}

// NewServer creates a Server reading its settings from loader.
func NewServer(loader *config.Loader, version string) *Server {
	ls := &Server{
		version:  version,
		loader:   loader,
		store:    savesync.NewConfigStore(loader.Build()),
		docs:     newDocumentStore(),
		notifier: &notifier{},
	}
	ls.writer = savesync.NewWriter(ls.notifier)
	ls.interceptor = savesync.NewInterceptor(
		ls.store,
		savesync.NewProcessor(nil, savesync.NewResolver()),
		ls.writer,
	)

	ls.handler = &protocol.Handler{
		Initialize:                      ls.initialize,
		Initialized:                     ls.initialized,
		Shutdown:                        ls.shutdown,
		SetTrace:                        ls.setTrace,
		TextDocumentDidOpen:             ls.textDocumentDidOpen,
		TextDocumentDidChange:           ls.textDocumentDidChange,
		TextDocumentDidSave:             ls.textDocumentDidSave,
		TextDocumentDidClose:            ls.textDocumentDidClose,
		TextDocumentWillSaveWaitUntil:   ls.textDocumentWillSaveWaitUntil,
		WorkspaceDidChangeConfiguration: ls.workspaceDidChangeConfiguration,
	}
	return ls
}

// RunStdio serves the client on stdin/stdout until the connection closes.
func (s *Server) RunStdio() error {
	return server.NewServer(s.handler, Name, false).RunStdio()
}

// refreshConfig rebuilds the configuration. Runs already in flight keep the
// snapshot they took.
func (s *Server) refreshConfig() {
	cfg := s.loader.Build()
	s.store.Replace(cfg)
	log.Infof("configuration: scss file %q, tab size %d, language %s", cfg.ScssFilePath, cfg.TabSize, cfg.LanguageID)
}
