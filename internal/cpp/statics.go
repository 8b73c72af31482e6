package cpp

import "regexp"

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)

	// Whole-word "static" followed by whitespace (newlines included) and an
	// identifier. "static_cast" and friends never match: there is no word
	// boundary before the underscore.
	staticDeclRe = regexp.MustCompile(`\bstatic\b\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

// Identifiers that follow a spelled-out "static " in cast or assertion
// constructs rather than in a declaration of a static local.
var staticFollowerAllowlist = map[string]bool{
	"cast":         true,
	"assert":       true,
	"pointer_cast": true,
}

// HasStaticLocals reports whether a lambda body declares a variable with
// static storage duration. A lambda with such a declaration carries state
// across invocations and must never be merged with another use site.
//
// This is a text classifier, not a parser: comments are stripped first,
// the static keyword is matched as a whole word regardless of whitespace
// or newline placement, and cast/assert lookalikes are not treated as
// declarations.
func HasStaticLocals(body string) bool {
	code := blockCommentRe.ReplaceAllString(body, "")
	code = lineCommentRe.ReplaceAllString(code, "")
	for _, m := range staticDeclRe.FindAllStringSubmatch(code, -1) {
		if staticFollowerAllowlist[m[1]] {
			continue
		}
		return true
	}
	return false
}
