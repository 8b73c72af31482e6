package diag

import "strings"

// LocateContext finds a snippet inside a source document and returns its
// 1-based line and column. Multi-line snippets are located by their first
// non-empty line. Matching ignores indentation differences; a snippet that
// matches more than one place is reported as not found, since a wrong
// location is worse than none.
func LocateContext(source string, context string) (line int, col int, ok bool) {
	needle := firstNonEmptyLine(context)
	if needle == "" {
		return 0, 0, false
	}

	lines := strings.Split(source, "\n")
	normalizedNeedle := normalize(needle)

	matchLine := -1
	for i, ln := range lines {
		if normalize(ln) == normalizedNeedle {
			if matchLine != -1 {
				matchLine = -2
				break
			}
			matchLine = i
		}
	}
	if matchLine >= 0 {
		ln := lines[matchLine]
		col := strings.Index(ln, needle)
		if col < 0 {
			col = len(ln) - len(strings.TrimLeft(ln, " \t"))
		}
		return matchLine + 1, col + 1, true
	}

	// Fall back to substring search for snippets embedded mid-line, e.g.
	// a lambda written as a YAML flow scalar.
	bestLine := -1
	bestCol := -1
	for i, ln := range lines {
		if idx := strings.Index(ln, needle); idx >= 0 {
			if bestLine != -1 {
				return 0, 0, false
			}
			bestLine = i + 1
			bestCol = idx + 1
		}
	}
	if bestLine != -1 {
		return bestLine, bestCol, true
	}
	return 0, 0, false
}

func firstNonEmptyLine(s string) string {
	for _, ln := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\t", "")
	return s
}
