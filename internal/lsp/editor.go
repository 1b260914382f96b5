package lsp

import (
	"strings"
	"sync"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yacobolo/scssgen/internal/savesync"
)

// responseEditor collects the edits of one willSaveWaitUntil request. The
// client applies them when it receives the response, so each replacement
// reports success right away.
type responseEditor struct {
	mu    sync.Mutex
	edits []protocol.TextEdit
}

func (e *responseEditor) Replace(doc savesync.Document, rng savesync.Range, text string) <-chan error {
	e.mu.Lock()
	e.edits = append(e.edits, protocol.TextEdit{
		Range:   clampRange(doc.Text(), rng),
		NewText: text,
	})
	e.mu.Unlock()

	done := make(chan error, 1)
	done <- nil
	return done
}

func (e *responseEditor) result() []protocol.TextEdit {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]protocol.TextEdit(nil), e.edits...)
}

// clampRange converts rng to a protocol range that stays inside text.
// Not every client accepts positions past the last line.
func clampRange(text string, rng savesync.Range) protocol.Range {
	return protocol.Range{
		Start: clampPosition(text, rng.Start),
		End:   clampPosition(text, rng.End),
	}
}

func clampPosition(text string, pos savesync.Position) protocol.Position {
	offset := savesync.Offset(text, pos)
	before := text[:offset]

	line := strings.Count(before, "\n")
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(len(utf16.Encode([]rune(before[lineStart:])))),
	}
}

// notifier shows messages through the client connection once it is known.
type notifier struct {
	mu     sync.RWMutex
	notify func(method string, params any)
}

func (n *notifier) set(notify func(method string, params any)) {
	n.mu.Lock()
	n.notify = notify
	n.mu.Unlock()
}

func (n *notifier) ShowError(message string) {
	n.mu.RLock()
	notify := n.notify
	n.mu.RUnlock()

	if notify == nil {
		log.Errorf("%s", message)
		return
	}
	notify(protocol.ServerWindowShowMessage, protocol.ShowMessageParams{
		Type:    protocol.MessageTypeError,
		Message: message,
	})
}
