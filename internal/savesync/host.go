// Package savesync keeps a component's stylesheet in step with its markup
// whenever the editor is about to save the component.
package savesync

// Document is the host's editing buffer. The synchronization only reads it;
// changes go through an Editor.
type Document interface {
	Path() string // absolute
	LanguageID() string
	Text() string
	IsDirty() bool
	LineCount() int
}

// Position is a zero-based line/character location.
type Position struct {
	Line      int
	Character int
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position
	End   Position
}

// FullRange covers a document of lineCount lines. It ends one line past the
// last line so a trailing newline or its absence never leaves text behind.
func FullRange(lineCount int) Range {
	return Range{
		Start: Position{Line: 0, Character: 0},
		End:   Position{Line: lineCount + 1, Character: 0},
	}
}

// Editor applies text edits to a document on behalf of the synchronization.
type Editor interface {
	// Replace schedules the replacement of rng in doc with text. The returned
	// channel delivers exactly one value once the edit is applied (nil) or rejected.
	Replace(doc Document, rng Range, text string) <-chan error
}

// Notifier surfaces messages to the user.
type Notifier interface {
	ShowError(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// ShowError calls f(message).
func (f NotifierFunc) ShowError(message string) {
	f(message)
}

// WillSaveEvent is fired by the host before it persists Document.
// A nil Editor means no editor is focused.
type WillSaveEvent struct {
	Document Document
	Editor   Editor
}
