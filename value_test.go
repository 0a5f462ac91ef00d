package ctpl

import "testing"

func TestValueKindPredicates(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"int", IntValue(42), KindInt},
		{"float", FloatValue(1.5), KindFloat},
		{"string", StringValue("hi"), KindString},
		{"array", ArrayValue([]Value{IntValue(1)}), KindArray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.v.Kind(), tt.kind)
			}
		})
	}
}

func TestValueIsTrue(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"nonzero int", IntValue(1), true},
		{"zero int", IntValue(0), false},
		{"nonzero float", FloatValue(0.1), true},
		{"zero float", FloatValue(0), false},
		{"nonempty string", StringValue("x"), true},
		{"empty string", StringValue(""), false},
		{"nonempty array", ArrayValue([]Value{IntValue(1)}), true},
		{"empty array", ArrayValue(nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsTrue(); got != tt.want {
				t.Errorf("IsTrue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueRender(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"int", IntValue(-7), "-7"},
		{"float", FloatValue(1.0), "1"},
		{"float fraction", FloatValue(0.25), "0.25"},
		{"string", StringValue("abc"), "abc"},
		{"array", ArrayValue([]Value{IntValue(1), StringValue("x")}), "[1, x]"},
		{"empty array", ArrayValue(nil), "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"int int", IntValue(2), IntValue(2), true},
		{"int float promotion", IntValue(2), FloatValue(2.0), true},
		{"string string", StringValue("a"), StringValue("a"), true},
		{"string string differ", StringValue("a"), StringValue("b"), false},
		{"array elementwise", ArrayValue([]Value{IntValue(1)}), ArrayValue([]Value{IntValue(1)}), true},
		{"array length differs", ArrayValue([]Value{IntValue(1)}), ArrayValue([]Value{IntValue(1), IntValue(2)}), false},
		{"mixed kinds", IntValue(1), StringValue("1"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.equal(tt.b); got != tt.equal {
				t.Errorf("equal() = %v, want %v", got, tt.equal)
			}
		})
	}
}
