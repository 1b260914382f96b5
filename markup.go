package scssgen

import (
	"errors"
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
)

// ErrNoTemplate is returned when the markup has no <template>...</template> section.
var ErrNoTemplate = errors.New("no template section in markup")

var (
	// templatePattern is the tolerant root-section check: an opening tag, anything, a closing tag.
	templatePattern = regexp.MustCompile(`<template[\s\S]*</template>`)

	// validClassName filters out bound or interpolated class tokens ("{{ x }}", "[a]").
	validClassName = regexp.MustCompile(`^-?[_a-zA-Z][\w-]*$`)
)

// voidElements never have children, with or without a trailing "/>".
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true,
	"track": true, "wbr": true,
}

// HasTemplate reports whether text contains a root template section.
func HasTemplate(text string) bool {
	return templatePattern.MatchString(text)
}

// classNode is one selector in the tree derived from markup.
type classNode struct {
	selector string // ".card" or "&.card--active"
	children []*classNode
}

// child returns the child with the given selector, creating it if needed.
// Equal sibling selectors collapse into one node.
func (n *classNode) child(selector string) *classNode {
	for _, c := range n.children {
		if c.selector == selector {
			return c
		}
	}
	c := &classNode{selector: selector}
	n.children = append(n.children, c)
	return c
}

// templateSection returns the text from the first "<template" to the end of the last "</template>".
func templateSection(markup string) (string, error) {
	start := strings.Index(markup, "<template")
	end := strings.LastIndex(markup, "</template>")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoTemplate
	}
	return markup[start : end+len("</template>")], nil
}

// openElement tracks an element whose children are still being read
type openElement struct {
	name   string
	target *classNode // where children attach
}

// scanMarkup builds the class selector tree of the root template section.
// Elements without a static class attribute are transparent: their children
// attach to the nearest classed ancestor.
func scanMarkup(markup string) (*classNode, error) {
	section, err := templateSection(markup)
	if err != nil {
		return nil, err
	}

	root := &classNode{}
	stack := []openElement{{name: "", target: root}}

	var (
		tagName string
		classes []string
	)

	lexer := html.NewLexer(parse.NewInputString(section))
	for {
		tt, _ := lexer.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a lexing error; either way the tree built so far is the result
			return root, nil

		case html.StartTagToken:
			tagName = strings.ToLower(string(lexer.Text()))
			classes = nil

		case html.AttributeToken:
			if strings.ToLower(string(lexer.AttrKey())) == "class" {
				classes = splitClassAttr(string(lexer.AttrVal()))
			}

		case html.StartTagCloseToken, html.StartTagVoidToken:
			parent := stack[len(stack)-1].target
			target := parent
			if len(classes) > 0 {
				target = parent.child("." + classes[0])
				for _, extra := range classes[1:] {
					target.child("&." + extra)
				}
			}
			if tt == html.StartTagCloseToken && !voidElements[tagName] {
				stack = append(stack, openElement{name: tagName, target: target})
			}
			tagName, classes = "", nil

		case html.EndTagToken:
			name := strings.ToLower(string(lexer.Text()))
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].name == name {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

// splitClassAttr turns a raw attribute value into its valid class names.
func splitClassAttr(raw string) []string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		raw = raw[1 : len(raw)-1]
	}

	var names []string
	for _, field := range strings.Fields(raw) {
		if validClassName.MatchString(field) {
			names = append(names, field)
		}
	}
	return names
}
