// Package report prints synchronization results for the command line.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/yacobolo/scssgen/internal/savesync"
)

// Options controls the reporter output.
type Options struct {
	UseColors bool // force colors on
	Quiet     bool // print errors only
}

// Reporter formats synchronization outcomes.
type Reporter struct {
	w         io.Writer
	useColors bool
	quiet     bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:         w,
		useColors: ShouldUseColors(w, opts.UseColors),
		quiet:     opts.Quiet,
	}
}

// ShouldUseColors decides whether output to w gets colors.
func ShouldUseColors(w io.Writer, force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// Auto-detect TTY
	if f, ok := w.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return true
		}
	}
	return false
}

// PrintOutcome reports one synchronization run.
func (r *Reporter) PrintOutcome(o savesync.Outcome) {
	if r.quiet {
		return
	}

	if o.Text == "" {
		fmt.Fprintf(r.w, "%s %s\n",
			RenderStyle(StyleCyan, o.Path+":", r.useColors),
			RenderStyle(StyleGray, "skipped ("+o.Skipped+")", r.useColors))
		return
	}

	fmt.Fprintf(r.w, "%s %s %s\n",
		RenderStyle(StyleCyan, o.Path+":", r.useColors),
		RenderStyle(StyleGreen, "synchronized", r.useColors),
		RenderStyle(StyleGray, fmt.Sprintf("(%s, %s)", o.Mode, o.Target), r.useColors))

	for _, name := range o.Added {
		fmt.Fprintf(r.w, "  %s\n", RenderStyle(StyleGreen, "+ ."+name, r.useColors))
	}
	for _, name := range o.Removed {
		fmt.Fprintf(r.w, "  %s\n", RenderStyle(StyleRed, "- ."+name, r.useColors))
	}
}

// PrintClassNames lists class names one per line.
func (r *Reporter) PrintClassNames(names []string) {
	for _, name := range names {
		fmt.Fprintln(r.w, name)
	}
}

// PrintError reports err. Errors are printed even when quiet.
func (r *Reporter) PrintError(err error) {
	fmt.Fprintf(r.w, "%s %v\n", RenderStyle(StyleRed, "error:", r.useColors), err)
}
