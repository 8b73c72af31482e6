package cpp

// Expression is anything that renders to a fragment of C++ source text.
type Expression interface {
	String() string
}

// RawExpression wraps pre-rendered C++ text.
type RawExpression struct {
	Text string
}

func Raw(text string) RawExpression { return RawExpression{Text: text} }

func (r RawExpression) String() string { return r.Text }

// Parameter is one (type, name) pair in a lambda or function signature.
// Order within a parameter list is significant.
type Parameter struct {
	Type string
	Name string
}

// SourceLocation records where a body snippet came from. It is used for
// provenance comments only and never takes part in equivalence decisions.
type SourceLocation struct {
	File string
	Line int
}
