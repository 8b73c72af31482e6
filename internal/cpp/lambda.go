package cpp

import (
	"fmt"
	"strings"
)

// LambdaExpression models one generated C++ lambda: ordered body fragments,
// an ordered parameter list, a capture descriptor and an optional explicit
// return type. An empty Capture means the lambda closes over nothing from
// its enclosing scope.
type LambdaExpression struct {
	Parts      []string
	Params     []Parameter
	Capture    string
	ReturnType Expression // nil means the return type is inferred
	Source     *SourceLocation
}

// FormatBody joins the body fragments and trims surrounding whitespace.
// The joined text is the lambda's identity as far as deduplication is
// concerned; the source location never contributes to it.
func (l *LambdaExpression) FormatBody() string {
	return strings.TrimSpace(strings.Join(l.Parts, ""))
}

// String renders the full inline lambda literal.
func (l *LambdaExpression) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(l.Capture)
	sb.WriteString("](")
	sb.WriteString(FormatParams(l.Params))
	sb.WriteString(")")
	if l.ReturnType != nil {
		sb.WriteString(" -> ")
		sb.WriteString(l.ReturnType.String())
	}
	sb.WriteString(" {\n")
	if l.Source != nil {
		fmt.Fprintf(&sb, "  // %s:%d\n", l.Source.File, l.Source.Line)
	}
	writeIndentedBody(&sb, l.FormatBody())
	sb.WriteString("}")
	return sb.String()
}

// SharedLambdaExpression refers to a lambda that has been hoisted into a
// shared top-level function. At a use site it renders as the bare function
// name; the definition itself is emitted once by the deferred flush.
type SharedLambdaExpression struct {
	FuncName   string
	Params     []Parameter
	ReturnType Expression
}

func (s *SharedLambdaExpression) String() string { return s.FuncName }

// Capture is always empty: only stateless lambdas are ever shared.
func (s *SharedLambdaExpression) Capture() string { return "" }

// Content is always empty: this is a reference, not a definition.
func (s *SharedLambdaExpression) Content() string { return "" }
