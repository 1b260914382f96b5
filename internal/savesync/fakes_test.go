package savesync

import (
	"sync"
)

type fakeDocument struct {
	path     string
	language string
	text     string
	dirty    bool
}

func (d *fakeDocument) Path() string       { return d.path }
func (d *fakeDocument) LanguageID() string { return d.language }
func (d *fakeDocument) Text() string       { return d.text }
func (d *fakeDocument) IsDirty() bool      { return d.dirty }
func (d *fakeDocument) LineCount() int     { return LineCount(d.text) }

// fakeEditor records replacements. Results are delivered only when release is
// called, unless auto is set.
type fakeEditor struct {
	mu      sync.Mutex
	calls   int
	ranges  []Range
	texts   []string
	pending []chan error
	auto    bool
	result  error
}

func (e *fakeEditor) Replace(doc Document, rng Range, text string) <-chan error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls++
	e.ranges = append(e.ranges, rng)
	e.texts = append(e.texts, text)
	ch := make(chan error, 1)
	if e.auto {
		ch <- e.result
	} else {
		e.pending = append(e.pending, ch)
	}
	return ch
}

func (e *fakeEditor) release(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.pending {
		ch <- err
	}
	e.pending = nil
}

func (e *fakeEditor) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

type recordedWrite struct {
	documentPath, rel, text string
}

// fakeSink records writes and mirrors Writer's routing to fallback.
type fakeSink struct {
	writes []recordedWrite
}

func (s *fakeSink) Write(documentPath, rel, text string, fallback func()) {
	if text == "" {
		return
	}
	if rel == "" {
		fallback()
		return
	}
	s.writes = append(s.writes, recordedWrite{documentPath, rel, text})
}

type fakeSource struct {
	text  string
	found bool
	reads int
}

func (s *fakeSource) Read(documentPath, rel string) (string, bool) {
	s.reads++
	return s.text, s.found
}

// countingGenerator wraps fn and counts calls.
type countingGenerator struct {
	calls  int
	priors []*string
	fn     Generator
}

func (g *countingGenerator) generate(markup string, prior *string, indentWidth int) (string, error) {
	g.calls++
	g.priors = append(g.priors, prior)
	return g.fn(markup, prior, indentWidth)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) ShowError(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}
