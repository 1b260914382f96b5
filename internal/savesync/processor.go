package savesync

import (
	"context"

	"github.com/yacobolo/scssgen"
)

// Generator turns markup plus prior stylesheet text into new stylesheet text.
// A nil prior asks for the whole document with its inline style block rewritten.
type Generator func(markup string, prior *string, indentWidth int) (string, error)

// StyleSource reads the external stylesheet of a document.
type StyleSource interface {
	Read(documentPath, rel string) (text string, found bool)
}

// Mode says where a synchronization result goes.
type Mode string

// Modes
const (
	ModeInline   Mode = "inline"
	ModeExternal Mode = "external"
)

// Outcome describes one synchronization run.
type Outcome struct {
	Path    string   // document path
	Mode    Mode     // inline or external
	Target  string   // file receiving Text
	Text    string   // new content; empty means nothing to do
	Added   []string // class names new to the stylesheet
	Removed []string // class names no longer in the stylesheet
	Skipped string   // why Text is empty
}

// Processor computes the stylesheet text for a document.
type Processor struct {
	generate Generator
	source   StyleSource
	filter   *pathFilter
}

// NewProcessor creates a Processor. A nil generate uses scssgen.Generate.
func NewProcessor(generate Generator, source StyleSource) *Processor {
	if generate == nil {
		generate = scssgen.Generate
	}
	return &Processor{
		generate: generate,
		source:   source,
		filter:   newPathFilter(),
	}
}

// Run returns the new stylesheet text for doc, or "" when there is nothing to do.
func (p *Processor) Run(ctx context.Context, doc Document, cfg Config) string {
	return p.Process(ctx, doc, cfg).Text
}

// Process runs the synchronization for doc under cfg. It never panics and
// never fails: every problem is logged and yields an Outcome with empty Text.
func (p *Processor) Process(ctx context.Context, doc Document, cfg Config) (out Outcome) {
	out = Outcome{Path: doc.Path(), Mode: ModeInline, Target: doc.Path()}
	if !cfg.InlineMode() {
		out.Mode = ModeExternal
		out.Target = ResolvePath(doc.Path(), cfg.ScssFilePath)
	}

	skip := func(reason string) Outcome {
		log.Debugf("skip %s: %s", doc.Path(), reason)
		out.Text = ""
		out.Skipped = reason
		return out
	}

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("generate %s: panic: %v", doc.Path(), r)
			out = skip("generator failed")
		}
	}()

	// 1. Eligibility
	if doc.LanguageID() != cfg.LanguageID {
		return skip("language " + doc.LanguageID() + " is not " + cfg.LanguageID)
	}
	text := doc.Text()
	if text == "" {
		return skip("empty document")
	}
	if !scssgen.HasTemplate(text) {
		return skip("no template section")
	}
	if reason, excluded := p.filter.excluded(doc.Path(), cfg); excluded {
		return skip(reason)
	}
	if err := ctx.Err(); err != nil {
		return skip(err.Error())
	}

	// 2. Prior stylesheet
	var (
		prior  *string
		before string
		found  bool
	)
	if out.Mode == ModeExternal {
		before, found = p.source.Read(doc.Path(), cfg.ScssFilePath)
		prior = &before
	} else {
		before, _ = scssgen.StyleBlockContent(text)
	}

	// 3. Generate
	generated, err := p.generate(text, prior, cfg.TabSize)
	if err != nil {
		log.Errorf("generate %s: %v", doc.Path(), err)
		return skip("generator failed")
	}
	if generated == "" {
		return skip("nothing generated")
	}

	if (out.Mode == ModeInline && generated == text) || (found && generated == before) {
		return skip("already in sync")
	}

	// 4. Report the change in top-level structure
	after := generated
	if out.Mode == ModeInline {
		after, _ = scssgen.StyleBlockContent(generated)
	}
	out.Added, out.Removed = scssgen.DiffClassNames(
		scssgen.ExtractClassNames(before),
		scssgen.ExtractClassNames(after),
	)
	log.Infof("synchronized %s (%s): +%d -%d classes", doc.Path(), out.Mode, len(out.Added), len(out.Removed))

	out.Text = generated
	return out
}
