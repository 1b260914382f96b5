package scssgen

import (
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// classSelector matches the preludes that take part in the synchronized tree.
var classSelector = regexp.MustCompile(`^&?\.[\w-]+$`)

// rule is a class rule of a stylesheet. Everything inside it that is not a
// nested class rule (declarations, comments, pseudo-state and media blocks)
// is kept verbatim in body, one statement per entry.
type rule struct {
	selector string
	body     []string
	children []*rule
}

// hasContent reports whether the rule or any descendant carries authored text.
func (r *rule) hasContent() bool {
	if len(r.body) > 0 {
		return true
	}
	for _, c := range r.children {
		if c.hasContent() {
			return true
		}
	}
	return false
}

// token is one lexed CSS token
type token struct {
	tt   css.TokenType
	text string
}

// scssLexer wraps the CSS lexer with one token of lookahead.
type scssLexer struct {
	lexer   *css.Lexer
	pending []token
}

func newSCSSLexer(text string) *scssLexer {
	return &scssLexer{lexer: css.NewLexer(parse.NewInputString(text))}
}

func (l *scssLexer) next() token {
	if n := len(l.pending); n > 0 {
		t := l.pending[n-1]
		l.pending = l.pending[:n-1]
		return t
	}
	tt, data := l.lexer.Next()
	return token{tt: tt, text: string(data)}
}

func (l *scssLexer) push(t token) {
	l.pending = append(l.pending, t)
}

// lineComment reports whether t opens a "//" comment and, if so, consumes it
// and returns its text without the trailing newline.
func (l *scssLexer) lineComment(t token) (string, bool) {
	if t.tt != css.DelimToken || t.text != "/" {
		return "", false
	}
	second := l.next()
	if second.tt != css.DelimToken || second.text != "/" {
		l.push(second)
		return "", false
	}

	var b strings.Builder
	b.WriteString("//")
	for {
		t := l.next()
		if t.tt == css.ErrorToken {
			l.push(t)
			break
		}
		// a newline ends the comment, even inside a token (an apostrophe lexes as a bad string)
		if i := strings.IndexAny(t.text, "\r\n"); i >= 0 {
			b.WriteString(t.text[:i])
			rest := token{tt: t.tt, text: t.text[i:]}
			if strings.TrimSpace(rest.text) == "" {
				rest.tt = css.WhitespaceToken
			}
			l.push(rest)
			break
		}
		b.WriteString(t.text)
	}
	return b.String(), true
}

// parseStylesheet reads SCSS text into a rule tree rooted at a selector-less rule.
// The lexer is tolerant: unbalanced input closes at end of text.
func parseStylesheet(text string) *rule {
	root := &rule{}
	parseBlock(newSCSSLexer(text), root, false)
	return root
}

func parseBlock(l *scssLexer, r *rule, nested bool) {
	var stmt strings.Builder
	tail := -1 // start of trailing comments in stmt

	// flush ends the current statement. At a closing brace or end of input the
	// last declaration may lack its ";": it gets one, and comments after it
	// become their own statement, as they would after a ";".
	flush := func(closing bool) {
		raw, comment := stmt.String(), ""
		if closing && tail >= 0 {
			raw, comment = raw[:tail], raw[tail:]
		}
		s := normalizeStatement(raw)
		if closing && needsSemicolon(s) {
			s += ";"
		}
		if s != "" {
			r.body = append(r.body, s)
		}
		if c := normalizeStatement(comment); c != "" {
			r.body = append(r.body, c)
		}
		stmt.Reset()
		tail = -1
	}

	for {
		t := l.next()

		if comment, ok := l.lineComment(t); ok {
			if strings.TrimSpace(stmt.String()) == "" {
				stmt.Reset()
				r.body = append(r.body, comment)
			} else {
				if tail < 0 {
					tail = stmt.Len()
				}
				stmt.WriteString(comment)
				stmt.WriteString("\n")
			}
			continue
		}

		switch t.tt {
		case css.ErrorToken:
			flush(true)
			l.push(t)
			return

		case css.CommentToken:
			if strings.TrimSpace(stmt.String()) == "" {
				stmt.Reset()
				r.body = append(r.body, normalizeStatement(t.text))
			} else {
				if tail < 0 {
					tail = stmt.Len()
				}
				stmt.WriteString(t.text)
			}

		case css.SemicolonToken:
			stmt.WriteString(";")
			flush(false)

		case css.LeftBraceToken:
			current := stmt.String()
			if strings.HasSuffix(current, "#") {
				// #{...} interpolation stays inside the statement
				stmt.WriteString("{")
				stmt.WriteString(captureBlock(l))
				tail = -1
				continue
			}

			prelude := strings.Join(strings.Fields(current), " ")
			if classSelector.MatchString(prelude) {
				stmt.Reset()
				child := &rule{selector: prelude}
				parseBlock(l, child, true)
				r.children = append(r.children, child)
				continue
			}

			stmt.WriteString("{")
			stmt.WriteString(captureBlock(l))
			flush(false)

		case css.RightBraceToken:
			flush(true)
			if nested {
				return
			}
			// stray closing brace at top level

		default:
			if t.tt != css.WhitespaceToken {
				tail = -1
			}
			stmt.WriteString(t.text)
		}
	}
}

// needsSemicolon reports whether s is a declaration left unterminated.
func needsSemicolon(s string) bool {
	if s == "" || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/*") {
		return false
	}
	return !strings.HasSuffix(s, ";") && !strings.HasSuffix(s, "}")
}

// captureBlock returns the raw text up to and including the brace that closes
// the block whose opening brace was just read.
func captureBlock(l *scssLexer) string {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		t := l.next()
		if comment, ok := l.lineComment(t); ok {
			b.WriteString(comment)
			continue
		}
		switch t.tt {
		case css.ErrorToken:
			l.push(t)
			return b.String()
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
		}
		b.WriteString(t.text)
	}
	return b.String()
}

// normalizeStatement trims a statement and removes the common indentation of
// its continuation lines so it can be re-indented at any depth.
func normalizeStatement(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if len(lines) == 1 {
		return s
	}

	common := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if common == -1 || indent < common {
			common = indent
		}
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimRight(lines[i][common:], " \t")
	}
	return strings.Join(lines, "\n")
}

// render writes the rule tree. The root rule has no selector and renders its
// body and children at depth 0.
func (r *rule) render(b *strings.Builder, depth int, unit string) {
	inner := depth
	if r.selector != "" {
		b.WriteString(strings.Repeat(unit, depth))
		b.WriteString(r.selector)
		b.WriteString(" {\n")
		inner = depth + 1
	}

	prefix := strings.Repeat(unit, inner)
	for _, stmt := range r.body {
		for _, line := range strings.Split(stmt, "\n") {
			if line != "" {
				b.WriteString(prefix)
				b.WriteString(line)
			}
			b.WriteString("\n")
		}
	}
	for _, c := range r.children {
		c.render(b, inner, unit)
	}

	if r.selector != "" {
		b.WriteString(strings.Repeat(unit, depth))
		b.WriteString("}\n")
	}
}
