package scssgen

import "regexp"

// classRulePattern matches ".name {" openers. The brace is required, the rule body is not.
var classRulePattern = regexp.MustCompile(`\.([\w-]+)\s*\{`)

// ExtractClassNames returns the class names of every ".name {" opener in styleText,
// left to right. Repeated names are kept in place.
func ExtractClassNames(styleText string) []string {
	names := []string{}

	pos := 0
	for pos <= len(styleText) {
		loc := classRulePattern.FindStringSubmatchIndex(styleText[pos:])
		if loc == nil {
			break
		}
		names = append(names, styleText[pos+loc[2]:pos+loc[3]])

		next := pos + loc[1]
		if next == pos {
			// zero-width match, step over it
			next++
		}
		pos = next
	}

	return names
}

// DiffClassNames reports names present in after but not in before (added) and
// names present in before but not in after (removed), each in first-seen order.
func DiffClassNames(before, after []string) (added, removed []string) {
	beforeSet := make(map[string]bool, len(before))
	for _, name := range before {
		beforeSet[name] = true
	}
	afterSet := make(map[string]bool, len(after))
	for _, name := range after {
		afterSet[name] = true
	}

	seen := make(map[string]bool)
	for _, name := range after {
		if !beforeSet[name] && !seen[name] {
			added = append(added, name)
			seen[name] = true
		}
	}
	seen = make(map[string]bool)
	for _, name := range before {
		if !afterSet[name] && !seen[name] {
			removed = append(removed, name)
			seen[name] = true
		}
	}

	return added, removed
}
