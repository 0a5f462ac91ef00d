package ctpl

import "io"

// Template is a parsed template ready to be rendered repeatedly against
// different environments (§3, §5).
type Template struct {
	name string
	root []*Stmt
}

// Parse lexes src into a Template. name is used only for error positions; it
// need not be a real file path.
func Parse(name, src string) (*Template, error) {
	logf("Parse(%q): %d bytes", name, len(src))
	root, err := parseTemplate(name, src)
	if err != nil {
		return nil, err
	}
	return &Template{name: name, root: root}, nil
}

// Name returns the name the template was parsed under.
func (t *Template) Name() string { return t.name }

// Render walks the template's statement tree against env, writing rendered
// bytes to w. Rendering stops at the first error (§4.4, §5); any bindings
// pushed by enclosing {for} loops up to that point are popped before Render
// returns, preserving the balanced-environment invariant.
func (t *Template) Render(env *Environment, w io.Writer) error {
	logf("Render(%q)", t.name)
	out := NewOutputStream(w)
	return renderStmts(t.root, env, out)
}

// EvaluateExpression parses and evaluates a single standalone expression
// (not a full template) against env, exercising the "lex all" mode of §4.2
// where trailing content after the expression is a syntax error.
func EvaluateExpression(name, src string, env *Environment) (Value, error) {
	expr, err := lexExpression(NewInputStream(name, src), true)
	if err != nil {
		return Value{}, err
	}
	return evalExpr(expr, env)
}
