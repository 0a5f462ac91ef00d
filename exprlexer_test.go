package ctpl

import "testing"

func evalOK(t *testing.T, src string) Value {
	t.Helper()
	v, err := EvaluateExpression("test", src, NewEnvironment())
	if err != nil {
		t.Fatalf("EvaluateExpression(%q) error = %v", src, err)
	}
	return v
}

func TestExprPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want Value
	}{
		{"1 + 2 * 3", IntValue(7)},
		{"(1 + 2) * 3", IntValue(9)},
		{"2 * 3 + 1", IntValue(7)},
		{"10 - 2 - 3", IntValue(5)},  // left-associative: (10-2)-3
		{"2 - -3", IntValue(5)},
		{"1 == 1 && 2 == 2", IntValue(1)},
		{"1 == 2 || 3 == 3", IntValue(1)},
		{"1 < 2 && 2 < 1", IntValue(0)},
		{`"a" + "b"`, StringValue("ab")},
		{"-(-5)", IntValue(5)},
		{"10 % 3", IntValue(1)},
		{"7 / 2", IntValue(3)},
		{"7.0 / 2", FloatValue(3.5)},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := evalOK(t, tt.src)
			if !got.equal(tt.want) {
				t.Errorf("eval(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestExprLeftAssociativeSubtraction(t *testing.T) {
	// (10 - 3) - 2 = 5, not 10 - (3 - 2) = 9
	got := evalOK(t, "10 - 3 - 2")
	if got.Int() != 5 {
		t.Errorf("10 - 3 - 2 = %v, want 5", got)
	}
}

func TestExprSymbolAndIndex(t *testing.T) {
	env := NewEnvironment()
	env.Push("xs", ArrayValue([]Value{IntValue(10), IntValue(20), IntValue(30)}))
	v, err := EvaluateExpression("test", "xs[1]", env)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if v.Int() != 20 {
		t.Errorf("xs[1] = %v, want 20", v)
	}
}

func TestExprErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrorKind
	}{
		{"missing operand at eof", "1 +", ErrMissingOperand},
		{"missing operator", "1 2", ErrMissingOperator},
		{"unbound symbol", "nope", ErrSymbolNotFound},
		{"unbalanced paren", "(1 + 2", ErrSyntax},
		{"division by zero", "1 / 0", ErrFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EvaluateExpression("test", tt.src, NewEnvironment())
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			cerr, ok := err.(*Error)
			if !ok {
				t.Fatalf("error is not *ctpl.Error: %v", err)
			}
			if cerr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", cerr.Kind, tt.kind)
			}
		})
	}
}

func TestExprIndexOutOfRange(t *testing.T) {
	env := NewEnvironment()
	env.Push("xs", ArrayValue([]Value{IntValue(1)}))
	_, err := EvaluateExpression("test", "xs[5]", env)
	if err == nil {
		t.Fatal("expected an out-of-range error")
	}
	if cerr, ok := err.(*Error); !ok || cerr.Kind != ErrIncompatibleSymbol {
		t.Errorf("error = %v, want ErrIncompatibleSymbol", err)
	}
}
