package ctpl

// Environment is a name-to-stack-of-values mapping (§3, §4.6). The effective
// value of a symbol is the top of its stack. Push/Pop are LIFO per name;
// Lookup never observes a name whose stack has been fully popped.
type Environment struct {
	bindings map[string][]Value
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{bindings: make(map[string][]Value)}
}

// Push appends a new binding for name, shadowing any existing binding.
func (e *Environment) Push(name string, v Value) {
	e.bindings[name] = append(e.bindings[name], v)
}

// Pop removes and returns the top binding for name. Popping a name with no
// bindings is an error (§3).
func (e *Environment) Pop(name string) (Value, error) {
	stack := e.bindings[name]
	if len(stack) == 0 {
		return Value{}, newError(ErrFailed, "env", "", 0, 0, "pop of empty binding stack for '"+name+"'")
	}
	top := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	if len(stack) == 0 {
		delete(e.bindings, name)
	} else {
		e.bindings[name] = stack
	}
	return top, nil
}

// Lookup returns the top binding for name, or ok=false if the name has no
// (or an empty) binding stack.
func (e *Environment) Lookup(name string) (v Value, ok bool) {
	stack := e.bindings[name]
	if len(stack) == 0 {
		return Value{}, false
	}
	return stack[len(stack)-1], true
}

// Depth reports the current stack depth for name, for tests that assert
// environment balance across a render.
func (e *Environment) Depth(name string) int {
	return len(e.bindings[name])
}

// Clone makes an independent copy of the environment (O(bindings)) for
// callers that want to render concurrently against a shared starting
// environment (§5: concurrent rendering against one mutable environment is
// disallowed, but cloning per worker is the documented escape hatch).
func (e *Environment) Clone() *Environment {
	c := NewEnvironment()
	for name, stack := range e.bindings {
		cp := make([]Value, len(stack))
		copy(cp, stack)
		c.bindings[name] = cp
	}
	return c
}

// Names returns the set of names with at least one binding, for diagnostics
// (e.g. a REPL's :env command). Order is unspecified.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.bindings))
	for name, stack := range e.bindings {
		if len(stack) > 0 {
			names = append(names, name)
		}
	}
	return names
}

// ParseDescription reads zero or more "name = value ;" bindings from src and
// pushes them onto the environment in source order, so later entries shadow
// earlier ones for the same name (§4.6). value is a number, a double-quoted
// string, or a comma-separated, bracketed array of values (possibly empty).
// Whitespace and '#'-to-end-of-line comments are skipped between bindings.
func (e *Environment) ParseDescription(name, src string) error {
	s := NewInputStream(name, src)
	for {
		skipBlankAndComments(s)
		if s.Eof() {
			return nil
		}

		ident := s.ReadSymbol()
		if ident == "" {
			return descSyntaxError(s, "expected a binding name")
		}

		skipBlankAndComments(s)
		if b, ok := s.PeekByte(); !ok || b != '=' {
			return descSyntaxError(s, "expected '=' after binding name")
		}
		s.Skip(1)

		skipBlankAndComments(s)
		val, err := readDescValue(s)
		if err != nil {
			return err
		}

		skipBlankAndComments(s)
		if b, ok := s.PeekByte(); !ok || b != ';' {
			return descSyntaxError(s, "expected ';' after binding value")
		}
		s.Skip(1)

		e.Push(ident, val)
	}
}

func skipBlankAndComments(s *InputStream) {
	for {
		s.SkipBlank()
		b, ok := s.PeekByte()
		if !ok || b != '#' {
			return
		}
		for {
			b, ok := s.GetByte()
			if !ok || b == '\n' {
				break
			}
		}
	}
}

func readDescValue(s *InputStream) (Value, error) {
	if b, ok := s.PeekByte(); ok {
		switch {
		case b == '"':
			str, err := s.ReadStringLiteral()
			if err != nil {
				return Value{}, err
			}
			return StringValue(str), nil
		case b == '-':
			s.Skip(1)
			n, err := s.ReadNumber()
			if err != nil {
				return Value{}, err
			}
			return negateNumber(n), nil
		case b == '+':
			s.Skip(1)
			return s.ReadNumber()
		case isDecimalDigit(b):
			return s.ReadNumber()
		case b == '[':
			return readDescArray(s)
		}
	}
	return Value{}, descSyntaxError(s, "expected a value (number, string, or array)")
}

func readDescArray(s *InputStream) (Value, error) {
	s.Skip(1) // '['
	var elems []Value
	skipBlankAndComments(s)
	if b, ok := s.PeekByte(); ok && b == ']' {
		s.Skip(1)
		return ArrayValue(elems), nil
	}
	for {
		skipBlankAndComments(s)
		v, err := readDescValue(s)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
		skipBlankAndComments(s)
		b, ok := s.PeekByte()
		if !ok {
			return Value{}, descSyntaxError(s, "unterminated array literal")
		}
		if b == ',' {
			s.Skip(1)
			continue
		}
		if b == ']' {
			s.Skip(1)
			return ArrayValue(elems), nil
		}
		return Value{}, descSyntaxError(s, "expected ',' or ']' in array literal")
	}
}

func negateNumber(v Value) Value {
	if v.IsFloat() {
		return FloatValue(-v.Float())
	}
	return IntValue(-v.Int())
}

func descSyntaxError(s *InputStream, msg string) error {
	name, line, col := s.Position()
	return newError(ErrSyntax, "env", name, line, col, msg)
}
