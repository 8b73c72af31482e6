package cpp

import (
	"strconv"
	"strings"
)

// SanitizeIdentifier maps an arbitrary configuration ID to a valid C++
// identifier: every disallowed rune becomes '_', and a leading digit gets
// an underscore prefix.
func SanitizeIdentifier(s string) string {
	if s == "" {
		return "_"
	}
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	out := sb.String()
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// FormatFloat renders a float as a C++ float literal. The fixed six-digit
// form keeps generated bodies byte-stable across runs, which the lambda
// registry's exact-match keys depend on.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64) + "f"
}

// FormatParams renders a parameter list as "type name, type name".
func FormatParams(params []Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Type+" "+p.Name)
	}
	return strings.Join(parts, ", ")
}

func writeIndentedBody(sb *strings.Builder, body string) {
	if body == "" {
		return
	}
	for _, line := range strings.Split(body, "\n") {
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}
