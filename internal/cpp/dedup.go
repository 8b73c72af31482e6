package cpp

import (
	"fmt"
	"strings"
)

const sharedLambdaPrefix = "shared_lambda_"

// inferredReturnSentinel keys lambdas with no explicit return type. A lambda
// with an explicit type never collides with one relying on inference, even
// when bodies and parameters match.
const inferredReturnSentinel = "inferred"

// lambdaKey is the exact-match identity of a stateless lambda: formatted
// body text, parameter (type, name) sequence and rendered return type.
type lambdaKey struct {
	body       string
	params     string
	returnType string
}

func keyFor(l *LambdaExpression) lambdaKey {
	var params strings.Builder
	for _, p := range l.Params {
		params.WriteString(p.Type)
		params.WriteByte(' ')
		params.WriteString(p.Name)
		params.WriteByte(',')
	}
	ret := inferredReturnSentinel
	if l.ReturnType != nil {
		ret = l.ReturnType.String()
	}
	return lambdaKey{body: l.FormatBody(), params: params.String(), returnType: ret}
}

// LambdaRegistry deduplicates stateless lambdas within a single generation
// run. Each distinct key is assigned one shared_lambda_<n> name, n strictly
// increasing from 0 in allocation order and never reused. A registry must
// not be carried across runs.
type LambdaRegistry struct {
	shared       map[lambdaKey]*SharedLambdaExpression
	declarations []string
	nextID       int
}

func NewLambdaRegistry() *LambdaRegistry {
	return &LambdaRegistry{shared: make(map[lambdaKey]*SharedLambdaExpression)}
}

// Process is the construction entry point used by all call sites needing a
// lambda value. Capturing lambdas and lambdas with static local state are
// returned unchanged and render inline; everything else is folded into a
// shared function reference.
func (r *LambdaRegistry) Process(l *LambdaExpression) Expression {
	if l.Capture != "" {
		return l
	}
	if ref, ok := r.SharedName(l); ok {
		return ref
	}
	return l
}

// SharedName returns the shared function reference for l, allocating a new
// name and recording its deferred declaration the first time the key is
// seen. The second result is false when l must stay inline because its body
// declares static local state.
func (r *LambdaRegistry) SharedName(l *LambdaExpression) (*SharedLambdaExpression, bool) {
	if HasStaticLocals(l.FormatBody()) {
		return nil, false
	}
	key := keyFor(l)
	if ref, ok := r.shared[key]; ok {
		return ref, true
	}
	ref := &SharedLambdaExpression{
		FuncName:   fmt.Sprintf("%s%d", sharedLambdaPrefix, r.nextID),
		Params:     l.Params,
		ReturnType: l.ReturnType,
	}
	r.nextID++
	r.declarations = append(r.declarations, renderSharedDeclaration(ref, l.FormatBody()))
	r.shared[key] = ref
	return ref, true
}

// PendingDeclarations returns the shared function definitions recorded so
// far, in allocation order, and clears the pending list. The generation
// driver consumes this exactly once, after all component generation.
func (r *LambdaRegistry) PendingDeclarations() []string {
	decls := r.declarations
	r.declarations = nil
	return decls
}

// Count returns how many shared functions have been allocated.
func (r *LambdaRegistry) Count() int { return r.nextID }

func renderSharedDeclaration(ref *SharedLambdaExpression, body string) string {
	ret := "auto"
	if ref.ReturnType != nil {
		ret = ref.ReturnType.String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s(%s) {\n", ret, ref.FuncName, FormatParams(ref.Params))
	writeIndentedBody(&sb, body)
	sb.WriteString("}")
	return sb.String()
}
