package lsp

import (
	"context"
	"fmt"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yacobolo/scssgen/internal/savesync"
)

func (s *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	s.notifier.set(context.Notify)

	// Root
	if root := workspaceRoot(params); root != "" {
		s.loader.SetWorkspaceRoot(root)
	}

	// Settings passed up front
	if settings, ok := params.InitializationOptions.(map[string]any); ok {
		if err := s.loader.SetSettings(settings); err != nil {
			return nil, err
		}
	}
	s.refreshConfig()

	syncKind := protocol.TextDocumentSyncKindIncremental

	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose:         &protocol.True,
		Change:            &syncKind,
		WillSaveWaitUntil: &protocol.True,
		Save:              &protocol.SaveOptions{IncludeText: &protocol.True},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &s.version,
		},
	}, nil
}

// workspaceRoot picks the first workspace folder, falling back to the root URI.
func workspaceRoot(params *protocol.InitializeParams) string {
	var uri string
	if len(params.WorkspaceFolders) > 0 {
		uri = params.WorkspaceFolders[0].URI
	} else if params.RootURI != nil {
		uri = *params.RootURI
	}
	if uri == "" {
		return ""
	}

	path, err := uriToPath(uri)
	if err != nil {
		log.Warningf("workspace root: %v", err)
		return ""
	}
	return path
}

func (s *Server) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	log.Infof("client initialized")
	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	// let pending stylesheet writes land
	s.writer.Wait()
	return nil
}

func (s *Server) setTrace(
	context *glsp.Context,
	params *protocol.SetTraceParams,
) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	return s.docs.open(params.TextDocument)
}

func (s *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	if err := s.docs.change(params.TextDocument.URI, params.TextDocument.Version, params.ContentChanges); err != nil {
		return fmt.Errorf("unexpected error during edit: %w", err)
	}
	return nil
}

func (s *Server) textDocumentDidSave(
	context *glsp.Context,
	params *protocol.DidSaveTextDocumentParams,
) error {
	s.docs.saved(params.TextDocument.URI, params.Text)
	return nil
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	s.docs.close(params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentWillSaveWaitUntil(
	context *glsp.Context,
	params *protocol.WillSaveTextDocumentParams,
) ([]protocol.TextEdit, error) {
	doc, ok := s.docs.snapshot(params.TextDocument.URI)
	if !ok {
		log.Debugf("will save unknown document %s", params.TextDocument.URI)
		return nil, nil
	}

	ctx, cancel := contextWithTimeout(willSaveTimeout)
	defer cancel()

	editor := &responseEditor{}
	task := s.interceptor.OnWillSave(ctx, savesync.WillSaveEvent{
		Document: doc,
		Editor:   editor,
	})
	if err := task.Wait(ctx); err != nil {
		log.Warningf("will save %s: %v", doc.Path(), err)
		return nil, nil
	}

	return editor.result(), nil
}

func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (s *Server) workspaceDidChangeConfiguration(
	context *glsp.Context,
	params *protocol.DidChangeConfigurationParams,
) error {
	settings, ok := params.Settings.(map[string]any)
	if !ok {
		log.Debugf("ignoring settings of type %T", params.Settings)
		return nil
	}
	if err := s.loader.SetSettings(settings); err != nil {
		return err
	}
	s.refreshConfig()
	return nil
}
