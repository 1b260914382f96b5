// Package scssgen derives nested SCSS class structure from Vue component markup.
//
// scssgen reads the class attributes of a component's <template> section and
// produces an SCSS rule tree with the same nesting, merged into an existing
// stylesheet so hand-written declarations survive every regeneration.
//
// # External stylesheet
//
// Pass the current content of the companion file as prior:
//
//	prior, _ := os.ReadFile("index.scss")
//	text := string(prior)
//	out, err := scssgen.Generate(component, &text, 2)
//
// # Inline style block
//
// Pass a nil prior to rewrite the component's own <style lang="scss"> block.
// The result is the whole component document:
//
//	out, err := scssgen.Generate(component, nil, 2)
//
// # Class listing
//
// ExtractClassNames lists every ".name {" opener of a stylesheet in order,
// repeats included, and DiffClassNames compares two such listings.
//
// # CLI Tool
//
// The scssgen command runs the synchronization as a language server
// (scssgen serve) or once for a single file (scssgen sync FILE).
//
//	go install github.com/yacobolo/scssgen/cmd/scssgen@latest
package scssgen
