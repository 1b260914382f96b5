package scssgen

import (
	"regexp"
	"strings"
)

var (
	styleBlockPattern = regexp.MustCompile(`(?is)<style(\s[^>]*)?>(.*?)</style\s*>`)
	scssLangPattern   = regexp.MustCompile(`(?i)\blang\s*=\s*["']?scss["']?`)
)

// styleBlock locates the content of a <style lang="scss"> block in a component document.
type styleBlock struct {
	contentStart int
	contentEnd   int
}

// findStyleBlock returns the first style block declared with lang="scss".
// Plain CSS blocks are never rewritten.
func findStyleBlock(doc string) (styleBlock, bool) {
	for _, m := range styleBlockPattern.FindAllStringSubmatchIndex(doc, -1) {
		// m[2]:m[3] attributes (may be absent), m[4]:m[5] content
		if m[2] == -1 {
			continue
		}
		if scssLangPattern.MatchString(doc[m[2]:m[3]]) {
			return styleBlock{contentStart: m[4], contentEnd: m[5]}, true
		}
	}
	return styleBlock{}, false
}

// StyleBlockContent returns the content of the component's SCSS style block.
func StyleBlockContent(doc string) (string, bool) {
	block, ok := findStyleBlock(doc)
	if !ok {
		return "", false
	}
	return doc[block.contentStart:block.contentEnd], true
}

// appendStyleBlock adds a new SCSS style block holding rendered at the end of
// doc, using nl as line break.
func appendStyleBlock(doc, rendered, nl string) string {
	if rendered == "" {
		return doc
	}

	var b strings.Builder
	b.WriteString(doc)
	if doc != "" && !strings.HasSuffix(doc, "\n") {
		b.WriteString(nl)
	}
	b.WriteString(nl + "<style lang=\"scss\">" + nl)
	b.WriteString(withLineEnding(rendered, nl))
	b.WriteString("</style>" + nl)
	return b.String()
}
