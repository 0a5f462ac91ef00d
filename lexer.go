package ctpl

// stmtKind tags the variant of a Stmt node (§3: Data, Expr, If, For).
type stmtKind int

const (
	stmtData stmtKind = iota
	stmtExpr
	stmtIf
	stmtFor
)

// Stmt is one node of the statement token tree produced by the template
// lexer. Sibling chains are represented as []*Stmt in source order.
type Stmt struct {
	Kind stmtKind

	// stmtData
	Data string

	// stmtExpr and stmtIf's condition and stmtFor's iterable all reuse Expr.
	Expr *Expr

	// stmtIf
	Then []*Stmt
	Else []*Stmt // nil if there was no {else}

	// stmtFor
	IterName string
	Body     []*Stmt
}

// chainTerminator records which construct ended a recursive lexing pass:
// running off the end of input, or hitting a matching {end} or {else}.
type chainTerminator int

const (
	termEOF chainTerminator = iota
	termEnd
	termElse
)

// stmtParser holds the InputStream threaded through a template's recursive
// lexing passes (§4.3, §4.8). Nesting itself is plain recursion: there is no
// explicit depth counter to maintain.
type stmtParser struct {
	s *InputStream
}

// parseTemplate lexes the entire template source into a sibling chain,
// enforcing that block_depth == 0 at EOF (§4.3). An empty template still
// returns a non-nil, single-element chain (a zero-length Data node), so a
// nil return uniquely signals an error.
func parseTemplate(name, src string) ([]*Stmt, error) {
	p := &stmtParser{s: NewInputStream(name, src)}
	nodes, term, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	if term != termEOF {
		return nil, p.unmatchedError(term)
	}
	if len(nodes) == 0 {
		nodes = []*Stmt{{Kind: stmtData, Data: ""}}
	}
	return nodes, nil
}

func (p *stmtParser) unmatchedError(term chainTerminator) error {
	name, line, col := p.s.Position()
	if term == termElse {
		return newError(ErrSyntax, "lexer", name, line, col, "unmatched 'else'")
	}
	return newError(ErrSyntax, "lexer", name, line, col, "unmatched 'end'")
}

// parseChain reads data runs interleaved with statements until it reaches
// EOF or a bare {end}/{else} belonging to an enclosing if/for, at which
// point it consumes that statement (keyword and closing brace) and returns
// without emitting a node for it.
func (p *stmtParser) parseChain() (nodes []*Stmt, term chainTerminator, err error) {
	for {
		data, hitBrace, err := p.readDataRun()
		if err != nil {
			return nil, termEOF, err
		}
		if data != "" {
			nodes = append(nodes, &Stmt{Kind: stmtData, Data: data})
		}
		if !hitBrace {
			return nodes, termEOF, nil
		}

		p.s.Skip(1) // consume '{'
		p.s.SkipBlank()

		kw := p.s.PeekSymbol(5)
		switch kw {
		case "end":
			p.s.ReadSymbol()
			if err := requireExprBoundary(p.s, "}"); err != nil {
				return nil, termEOF, err
			}
			return nodes, termEnd, nil

		case "else":
			p.s.ReadSymbol()
			if err := requireExprBoundary(p.s, "}"); err != nil {
				return nil, termEOF, err
			}
			return nodes, termElse, nil

		case "if":
			p.s.ReadSymbol()
			stmt, err := p.parseIf()
			if err != nil {
				return nil, termEOF, err
			}
			nodes = append(nodes, stmt)

		case "for":
			p.s.ReadSymbol()
			stmt, err := p.parseFor()
			if err != nil {
				return nil, termEOF, err
			}
			nodes = append(nodes, stmt)

		default:
			cond, err := lexExpression(p.s, false)
			if err != nil {
				return nil, termEOF, err
			}
			if err := requireExprBoundary(p.s, "}"); err != nil {
				return nil, termEOF, err
			}
			nodes = append(nodes, &Stmt{Kind: stmtExpr, Expr: cond})
		}
	}
}

func (p *stmtParser) parseIf() (*Stmt, error) {
	cond, err := lexExpression(p.s, false)
	if err != nil {
		return nil, err
	}
	if err := requireExprBoundary(p.s, "}"); err != nil {
		return nil, err
	}

	then, term, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	if term == termEOF {
		name, line, col := p.s.Position()
		return nil, newError(ErrSyntax, "lexer", name, line, col, "unclosed if/else block")
	}

	stmt := &Stmt{Kind: stmtIf, Expr: cond, Then: then}

	if term == termElse {
		elseNodes, term2, err := p.parseChain()
		if err != nil {
			return nil, err
		}
		if term2 != termEnd {
			name, line, col := p.s.Position()
			return nil, newError(ErrSyntax, "lexer", name, line, col, "unclosed if/else block")
		}
		stmt.Else = elseNodes
	}

	return stmt, nil
}

func (p *stmtParser) parseFor() (*Stmt, error) {
	p.s.SkipBlank()
	name, line, col := p.s.Position()
	iterName := p.s.ReadSymbol()
	if iterName == "" {
		return nil, newError(ErrSyntax, "lexer", name, line, col, "expected an iterator name after 'for'")
	}

	p.s.SkipBlank()
	name, line, col = p.s.Position()
	kw := p.s.ReadSymbol()
	if kw != "in" {
		return nil, newError(ErrSyntax, "lexer", name, line, col, "expected keyword 'in' in for-statement")
	}

	arrExpr, err := lexExpression(p.s, false)
	if err != nil {
		return nil, err
	}
	if err := requireExprBoundary(p.s, "}"); err != nil {
		return nil, err
	}

	body, term, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	if term != termEnd {
		name, line, col := p.s.Position()
		if term == termElse {
			return nil, newError(ErrSyntax, "lexer", name, line, col, "'else' not allowed inside 'for'")
		}
		return nil, newError(ErrSyntax, "lexer", name, line, col, "unclosed for block")
	}

	return &Stmt{Kind: stmtFor, Expr: arrExpr, IterName: iterName, Body: body}, nil
}

// readDataRun consumes characters up to the next unescaped '{', an
// unescaped '}' (a syntax error outside any statement), or EOF, decoding
// the \{, \}, \\ and generic \x escapes of §4.3 as it goes.
func (p *stmtParser) readDataRun() (data string, hitOpenBrace bool, err error) {
	var buf []byte
	for {
		b, ok := p.s.PeekByte()
		if !ok {
			return string(buf), false, nil
		}
		switch b {
		case '{':
			return string(buf), true, nil
		case '}':
			name, line, col := p.s.Position()
			return "", false, newError(ErrSyntax, "lexer", name, line, col, "unescaped '}' outside of a statement")
		case '\\':
			p.s.Skip(1)
			esc, ok := p.s.GetByte()
			if !ok {
				buf = append(buf, '\\')
				return string(buf), false, nil
			}
			buf = append(buf, esc)
		default:
			p.s.Skip(1)
			buf = append(buf, b)
		}
	}
}
