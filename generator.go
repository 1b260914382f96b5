package scssgen

import (
	"strings"
)

// DefaultIndentWidth is used when a non-positive indent width is given.
const DefaultIndentWidth = 2

// Generate is the main entry point. It derives the class selector tree of the
// markup's root template and merges it into the prior stylesheet text.
//
// When prior is nil the markup is a whole component document and the result is
// that document with its SCSS style block rewritten. Otherwise the result is the
// new content of the external stylesheet whose current content is *prior.
func Generate(markup string, prior *string, indentWidth int) (string, error) {
	if indentWidth < 1 {
		indentWidth = DefaultIndentWidth
	}

	// 1. Build the selector tree from markup
	tree, err := scanMarkup(markup)
	if err != nil {
		return "", err
	}

	// 2. External file
	if prior != nil {
		return withLineEnding(renderMerged(tree, *prior, indentWidth), lineEnding(*prior)), nil
	}

	// 3. Inline style block
	nl := lineEnding(markup)
	block, ok := findStyleBlock(markup)
	if !ok {
		rendered := renderMerged(tree, "", indentWidth)
		return appendStyleBlock(markup, rendered, nl), nil
	}

	rendered := renderMerged(tree, markup[block.contentStart:block.contentEnd], indentWidth)
	return markup[:block.contentStart] + nl + withLineEnding(rendered, nl) + markup[block.contentEnd:], nil
}

// lineEnding returns "\r\n" if text uses Windows line endings and "\n" otherwise.
func lineEnding(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// withLineEnding converts the "\n" line breaks of rendered output to nl.
func withLineEnding(s, nl string) string {
	if nl == "\n" {
		return s
	}
	return strings.ReplaceAll(s, "\n", nl)
}

// renderMerged parses the prior stylesheet, merges the markup tree into it and renders the result.
func renderMerged(tree *classNode, prior string, indentWidth int) string {
	root := parseStylesheet(prior)
	root.children = mergeRules(tree.children, root.children)

	var b strings.Builder
	root.render(&b, 0, strings.Repeat(" ", indentWidth))
	return b.String()
}

// mergeRules pairs generated nodes with prior rules of the same selector.
// Generated nodes come first, in markup order, carrying the prior body. Prior
// rules without a counterpart are kept afterwards if they hold authored content.
func mergeRules(nodes []*classNode, prior []*rule) []*rule {
	// Queue per selector so repeated prior selectors pair up in order
	bySelector := make(map[string][]*rule)
	for _, p := range prior {
		bySelector[p.selector] = append(bySelector[p.selector], p)
	}
	used := make(map[*rule]bool)

	merged := make([]*rule, 0, len(nodes)+len(prior))
	for _, n := range nodes {
		r := &rule{selector: n.selector}

		var priorChildren []*rule
		if queue := bySelector[n.selector]; len(queue) > 0 {
			p := queue[0]
			bySelector[n.selector] = queue[1:]
			used[p] = true
			r.body = p.body
			priorChildren = p.children
		}

		r.children = mergeRules(n.children, priorChildren)
		merged = append(merged, r)
	}

	for _, p := range prior {
		if !used[p] && p.hasContent() {
			merged = append(merged, p)
		}
	}

	return merged
}
