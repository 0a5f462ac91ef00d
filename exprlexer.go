package ctpl

import "strings"

// exprLexer parses an arithmetic/boolean expression from an InputStream into
// an Expr tree, handling operator precedence and associativity, parentheses,
// unary sign, symbol indexing, and literals (§4.2). The operand/operator
// expectation of §4.8's state machine falls directly out of the grammar
// here: parsePrimary is only ever called where an operand is expected, and
// tryConsumeOp only where an operator is, so no explicit state field is
// threaded through.
type exprLexer struct {
	s *InputStream
}

// operator precedence table (§4.2), lowest to highest. All operators are
// left-associative; unary +/- bind tighter than every binary operator.
var precedenceLevels = [][]string{
	{"||"},
	{"&&"},
	{"==", "!="},
	{"<=", ">=", "<", ">"}, // tryConsumeOp tries 2-char forms first (longestFirst)
	{"+", "-"},
	{"*", "/", "%"},
}

// lexExpression parses one expression from s. If lexAll is true, the caller
// asserts that everything remaining after the expression must be whitespace
// or EOF; any other trailing content is a syntax error.
func lexExpression(s *InputStream, lexAll bool) (*Expr, error) {
	l := &exprLexer{s: s}
	expr, err := l.parseLevel(0)
	if err != nil {
		return nil, err
	}
	if lexAll {
		s.SkipBlank()
		if !s.Eof() {
			return nil, trailingContentError(s, "trailing garbage after expression")
		}
	}
	return expr, nil
}

// trailingContentError classifies unexpected content following a completed
// expression: if it looks like the start of another primary (digit, quote,
// symbol, paren) with no operator in between, that's specifically a missing
// operator (§4.2's "two adjacent primaries"); anything else is a generic
// syntax error carrying msg.
func trailingContentError(s *InputStream, msg string) error {
	name, line, col := s.Position()
	if b, ok := s.PeekByte(); ok && (isDecimalDigit(b) || b == '"' || b == '(' || isSymbolStart(b)) {
		return newError(ErrMissingOperator, "exprlexer", name, line, col, "unexpected second operand; an operator was expected")
	}
	return newError(ErrSyntax, "exprlexer", name, line, col, msg)
}

// requireExprBoundary is used by the statement lexer after parsing an
// expression to require a delimiter (typically "}"), distinguishing a
// missing-operator case from a generic syntax error when the delimiter is
// absent.
func requireExprBoundary(s *InputStream, closer string) error {
	s.SkipBlank()
	if s.HasPrefix(closer) {
		s.Skip(len(closer))
		return nil
	}
	return trailingContentError(s, "expected '"+closer+"'")
}

// parseLevel implements precedence climbing: level indexes into
// precedenceLevels, increasing levels bind tighter. Level == len(levels)
// bottoms out at parseUnary.
func (l *exprLexer) parseLevel(level int) (*Expr, error) {
	if level == len(precedenceLevels) {
		return l.parseUnary()
	}

	left, err := l.parseLevel(level + 1)
	if err != nil {
		return nil, err
	}

	for {
		op, line, col, ok := l.tryConsumeOp(precedenceLevels[level])
		if !ok {
			return left, nil
		}
		right, err := l.parseLevel(level + 1)
		if err != nil {
			return nil, err
		}
		left = &Expr{Kind: ExprBinary, Op: op, Left: left, Right: right, Line: line, Col: col}
	}
}

// tryConsumeOp checks, after skipping blanks, whether the next bytes match
// one of candidates (checked longest-first so "<=" wins over "<"). On match
// it consumes the operator and returns it with its source position.
func (l *exprLexer) tryConsumeOp(candidates []string) (op string, line, col int, ok bool) {
	save := *l.s
	l.s.SkipBlank()
	_, line, col = l.s.Position()
	for _, cand := range longestFirst(candidates) {
		if l.s.HasPrefix(cand) {
			l.s.Skip(len(cand))
			return cand, line, col, true
		}
	}
	*l.s = save
	return "", 0, 0, false
}

func longestFirst(ops []string) []string {
	out := make([]string, len(ops))
	copy(out, ops)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// parseUnary handles a chain of prefix + / - applied to a primary (§4.2:
// unary +/- bind tighter than any binary operator and apply only to a
// following primary).
func (l *exprLexer) parseUnary() (*Expr, error) {
	l.s.SkipBlank()
	_, line, col := l.s.Position()
	if b, ok := l.s.PeekByte(); ok && (b == '+' || b == '-') {
		l.s.Skip(1)
		operand, err := l.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: ExprUnary, Op: string(b), Operand: operand, Line: line, Col: col}, nil
	}
	return l.parsePrimary()
}

// parsePrimary implements: number | string | true/false | symbol[index]... |
// ( expression ) (§4.2).
func (l *exprLexer) parsePrimary() (*Expr, error) {
	l.s.SkipBlank()
	name, line, col := l.s.Position()

	b, ok := l.s.PeekByte()
	if !ok {
		return nil, newError(ErrMissingOperand, "exprlexer", name, line, col, "expected an expression, found end of input")
	}

	switch {
	case b == '"':
		str, err := l.s.ReadStringLiteral()
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: ExprLiteral, Lit: StringValue(str), Line: line, Col: col}, nil

	case isDecimalDigit(b):
		n, err := l.s.ReadNumber()
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: ExprLiteral, Lit: n, Line: line, Col: col}, nil

	case b == '(':
		l.s.Skip(1)
		inner, err := l.parseLevel(0)
		if err != nil {
			return nil, err
		}
		l.s.SkipBlank()
		if cb, ok := l.s.PeekByte(); !ok || cb != ')' {
			_, eline, ecol := l.s.Position()
			return nil, newError(ErrSyntax, "exprlexer", name, eline, ecol, "unbalanced parenthesis: expected ')'")
		}
		l.s.Skip(1)
		return inner, nil

	case isSymbolStart(b):
		sym := l.s.ReadSymbol()
		switch sym {
		case "true":
			return &Expr{Kind: ExprLiteral, Lit: BoolValue(true), Line: line, Col: col}, nil
		case "false":
			return &Expr{Kind: ExprLiteral, Lit: BoolValue(false), Line: line, Col: col}, nil
		}
		return l.parseIndexChain(&Expr{Kind: ExprSymbol, Name: sym, Line: line, Col: col})

	default:
		if isBinaryOperatorStart(b) || b == '}' {
			return nil, newError(ErrMissingOperand, "exprlexer", name, line, col, "expected an expression, found operator or end")
		}
		return nil, newError(ErrSyntax, "exprlexer", name, line, col, "unexpected character '"+string(b)+"'")
	}
}

// parseIndexChain consumes zero or more "[ expr ]" suffixes, with optional
// blanks between the symbol and the first "[" and between bracket pairs.
func (l *exprLexer) parseIndexChain(sym *Expr) (*Expr, error) {
	for {
		save := *l.s
		l.s.SkipBlank()
		b, ok := l.s.PeekByte()
		if !ok || b != '[' {
			*l.s = save
			return sym, nil
		}
		l.s.Skip(1)
		idx, err := l.parseLevel(0)
		if err != nil {
			return nil, err
		}
		l.s.SkipBlank()
		if cb, ok := l.s.PeekByte(); !ok || cb != ']' {
			name, line, col := l.s.Position()
			return nil, newError(ErrSyntax, "exprlexer", name, line, col, "unterminated index: expected ']'")
		}
		l.s.Skip(1)
		sym.Indices = append(sym.Indices, idx)
	}
}

func isBinaryOperatorStart(b byte) bool {
	return strings.IndexByte("+-*/%<>=!&|", b) >= 0
}
