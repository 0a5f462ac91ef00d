package ctpl

import "strings"

// renderStmts walks a sibling chain left-to-right, depth-first, writing
// bytes to out and short-circuiting on the first error (§4.4, §5).
func renderStmts(nodes []*Stmt, env *Environment, out *OutputStream) error {
	for _, n := range nodes {
		if err := renderStmt(n, env, out); err != nil {
			return err
		}
	}
	return nil
}

func renderStmt(n *Stmt, env *Environment, out *OutputStream) error {
	switch n.Kind {
	case stmtData:
		return out.WriteString(n.Data)

	case stmtExpr:
		v, err := evalExpr(n.Expr, env)
		if err != nil {
			return err
		}
		return out.WriteString(v.render())

	case stmtIf:
		cond, err := evalExpr(n.Expr, env)
		if err != nil {
			return err
		}
		if cond.IsTrue() {
			return renderStmts(n.Then, env, out)
		}
		return renderStmts(n.Else, env, out)

	case stmtFor:
		return renderFor(n, env, out)

	default:
		return newError(ErrFailed, "eval", "", 0, 0, "unreachable statement kind")
	}
}

func renderFor(n *Stmt, env *Environment, out *OutputStream) error {
	seq, err := evalExpr(n.Expr, env)
	if err != nil {
		return err
	}
	if !seq.IsArray() {
		return exprError(ErrIncompatibleSymbol, n.Expr, "cannot iterate over "+seq.render())
	}

	for _, elem := range seq.Elems() {
		env.Push(n.IterName, elem)
		err := renderStmts(n.Body, env, out)
		// The pop must happen even if the body failed (§3, §5, §8:
		// "balanced environment").
		if _, popErr := env.Pop(n.IterName); popErr != nil && err == nil {
			err = popErr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// evalExpr is the recursive expression tree walk (§4.4): literals clone by
// value, symbols resolve through the environment and any index chain,
// binary operators apply the type rules of §4.5.
func evalExpr(e *Expr, env *Environment) (Value, error) {
	switch e.Kind {
	case ExprLiteral:
		return e.Lit, nil

	case ExprSymbol:
		v, ok := env.Lookup(e.Name)
		if !ok {
			logf("Lookup(%q) failed: no binding\n", e.Name)
			return Value{}, exprError(ErrSymbolNotFound, e, "symbol not found: "+e.Name)
		}
		for _, idxExpr := range e.Indices {
			if !v.IsArray() {
				return Value{}, exprError(ErrIncompatibleSymbol, idxExpr, "cannot index non-array value "+v.render())
			}
			idx, err := evalExpr(idxExpr, env)
			if err != nil {
				return Value{}, err
			}
			if !idx.IsInt() {
				return Value{}, exprError(ErrIncompatibleSymbol, idxExpr, "index must be an integer")
			}
			i := idx.Int()
			if i < 0 || i >= int64(len(v.Elems())) {
				return Value{}, exprError(ErrIncompatibleSymbol, idxExpr, "index out of range")
			}
			v = v.Elems()[i]
		}
		return v, nil

	case ExprUnary:
		return evalUnary(e, env)

	case ExprBinary:
		return evalBinary(e, env)

	default:
		return Value{}, exprError(ErrFailed, e, "unreachable expression kind")
	}
}

func evalUnary(e *Expr, env *Environment) (Value, error) {
	v, err := evalExpr(e.Operand, env)
	if err != nil {
		return Value{}, err
	}
	if !v.IsNumber() {
		return Value{}, exprError(ErrIncompatibleSymbol, e, "unary '"+e.Op+"' requires a number")
	}
	if e.Op == "+" {
		return v, nil
	}
	if v.IsFloat() {
		return FloatValue(-v.Float()), nil
	}
	return IntValue(-v.Int()), nil
}

func evalBinary(e *Expr, env *Environment) (Value, error) {
	switch e.Op {
	case "&&":
		left, err := evalExpr(e.Left, env)
		if err != nil {
			return Value{}, err
		}
		if !left.IsTrue() {
			return BoolValue(false), nil
		}
		right, err := evalExpr(e.Right, env)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(right.IsTrue()), nil

	case "||":
		left, err := evalExpr(e.Left, env)
		if err != nil {
			return Value{}, err
		}
		if left.IsTrue() {
			return BoolValue(true), nil
		}
		right, err := evalExpr(e.Right, env)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(right.IsTrue()), nil
	}

	left, err := evalExpr(e.Left, env)
	if err != nil {
		return Value{}, err
	}
	right, err := evalExpr(e.Right, env)
	if err != nil {
		return Value{}, err
	}

	switch e.Op {
	case "+", "-", "*", "/", "%":
		return evalArith(e, left, right)
	case "==", "!=", "<", "<=", ">", ">=":
		return evalCompare(e, left, right)
	default:
		return Value{}, exprError(ErrFailed, e, "unimplemented operator '"+e.Op+"'")
	}
}

func evalArith(e *Expr, left, right Value) (Value, error) {
	if e.Op == "+" {
		if left.IsString() && right.IsString() {
			return StringValue(left.Str() + right.Str()), nil
		}
		if left.IsArray() || right.IsArray() {
			return arrayConcat(left, right), nil
		}
	}

	if !left.IsNumber() || !right.IsNumber() {
		return Value{}, exprError(ErrIncompatibleSymbol, e, "incompatible operands for '"+e.Op+"'")
	}

	if left.IsFloat() || right.IsFloat() {
		l, r := left.AsFloat(), right.AsFloat()
		switch e.Op {
		case "+":
			return FloatValue(l + r), nil
		case "-":
			return FloatValue(l - r), nil
		case "*":
			return FloatValue(l * r), nil
		case "/":
			if r == 0 {
				return Value{}, exprError(ErrFailed, e, "division by zero")
			}
			return FloatValue(l / r), nil
		case "%":
			return Value{}, exprError(ErrIncompatibleSymbol, e, "'%' requires integer operands")
		}
	}

	l, r := left.Int(), right.Int()
	switch e.Op {
	case "+":
		return IntValue(l + r), nil
	case "-":
		return IntValue(l - r), nil
	case "*":
		return IntValue(l * r), nil
	case "/":
		if r == 0 {
			return Value{}, exprError(ErrFailed, e, "division by zero")
		}
		return IntValue(l / r), nil
	case "%":
		if r == 0 {
			return Value{}, exprError(ErrFailed, e, "modulo by zero")
		}
		return IntValue(l % r), nil
	}
	panic("unreachable")
}

func arrayConcat(left, right Value) Value {
	if left.IsArray() && right.IsArray() {
		out := make([]Value, 0, len(left.Elems())+len(right.Elems()))
		out = append(out, left.Elems()...)
		out = append(out, right.Elems()...)
		return ArrayValue(out)
	}
	if left.IsArray() {
		out := make([]Value, 0, len(left.Elems())+1)
		out = append(out, left.Elems()...)
		out = append(out, right)
		return ArrayValue(out)
	}
	out := make([]Value, 0, len(right.Elems())+1)
	out = append(out, left)
	out = append(out, right.Elems()...)
	return ArrayValue(out)
}

func evalCompare(e *Expr, left, right Value) (Value, error) {
	sameNumeric := left.IsNumber() && right.IsNumber()
	sameString := left.IsString() && right.IsString()
	sameArray := left.IsArray() && right.IsArray()

	switch e.Op {
	case "==":
		if sameNumeric || sameString || sameArray {
			return BoolValue(left.equal(right)), nil
		}
		return BoolValue(false), nil
	case "!=":
		if sameNumeric || sameString || sameArray {
			return BoolValue(!left.equal(right)), nil
		}
		return BoolValue(true), nil
	}

	// Ordering operators: arrays never support ordering; mixed types error.
	switch {
	case sameNumeric:
		l, r := left.AsFloat(), right.AsFloat()
		if left.IsInt() && right.IsInt() {
			l, r = float64(left.Int()), float64(right.Int())
		}
		return BoolValue(compareFloat(e.Op, l, r)), nil
	case sameString:
		c := strings.Compare(left.Str(), right.Str())
		return BoolValue(compareSign(e.Op, c)), nil
	default:
		return Value{}, exprError(ErrIncompatibleSymbol, e, "ordering operator '"+e.Op+"' requires two numbers or two strings")
	}
}

func compareFloat(op string, l, r float64) bool {
	switch op {
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	}
	return false
}

func compareSign(op string, c int) bool {
	switch op {
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	}
	return false
}

func exprError(kind ErrorKind, e *Expr, msg string) *Error {
	return newError(kind, "eval", "", e.Line, e.Col, msg)
}
