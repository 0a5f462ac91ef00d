package ctpl

import "testing"

func TestEnvironmentPushPopLIFO(t *testing.T) {
	env := NewEnvironment()
	env.Push("x", IntValue(1))
	env.Push("x", IntValue(2))

	v, ok := env.Lookup("x")
	if !ok || v.Int() != 2 {
		t.Fatalf("Lookup(x) = %v, %v; want 2, true", v, ok)
	}

	popped, err := env.Pop("x")
	if err != nil || popped.Int() != 2 {
		t.Fatalf("Pop(x) = %v, %v; want 2, nil", popped, err)
	}

	v, ok = env.Lookup("x")
	if !ok || v.Int() != 1 {
		t.Fatalf("Lookup(x) after pop = %v, %v; want 1, true", v, ok)
	}

	if _, err := env.Pop("x"); err != nil {
		t.Fatalf("Pop(x) second = %v, want nil", err)
	}
	if _, ok := env.Lookup("x"); ok {
		t.Fatalf("Lookup(x) after emptying stack should be ok=false")
	}
}

func TestEnvironmentPopEmptyIsError(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Pop("missing"); err == nil {
		t.Fatal("Pop on an unbound name should return an error")
	}
}

func TestParseDescription(t *testing.T) {
	env := NewEnvironment()
	src := `
		# a comment
		name = "world" ;
		count = 3 ;
		pi = 3.5 ;
		neg = -4 ;
		items = [1, 2, 3] ;
		empty = [] ;
	`
	if err := env.ParseDescription("test", src); err != nil {
		t.Fatalf("ParseDescription() error = %v", err)
	}

	cases := []struct {
		name string
		want Value
	}{
		{"name", StringValue("world")},
		{"count", IntValue(3)},
		{"pi", FloatValue(3.5)},
		{"neg", IntValue(-4)},
		{"items", ArrayValue([]Value{IntValue(1), IntValue(2), IntValue(3)})},
		{"empty", ArrayValue(nil)},
	}
	for _, c := range cases {
		v, ok := env.Lookup(c.name)
		if !ok {
			t.Errorf("Lookup(%q) not found", c.name)
			continue
		}
		if !v.equal(c.want) {
			t.Errorf("Lookup(%q) = %v, want %v", c.name, v, c.want)
		}
	}
}

func TestParseDescriptionShadowing(t *testing.T) {
	env := NewEnvironment()
	if err := env.ParseDescription("test", "x = 1 ; x = 2 ;"); err != nil {
		t.Fatalf("ParseDescription() error = %v", err)
	}
	if env.Depth("x") != 2 {
		t.Fatalf("Depth(x) = %d, want 2", env.Depth("x"))
	}
	v, _ := env.Lookup("x")
	if v.Int() != 2 {
		t.Fatalf("Lookup(x) = %v, want 2 (later binding shadows)", v)
	}
}

func TestParseDescriptionSyntaxErrors(t *testing.T) {
	tests := []string{
		"x 1 ;",     // missing '='
		"x = 1",     // missing ';'
		"x = ;",     // missing value
		"= 1 ;",     // missing name
		"x = [1,2 ", // unterminated array
	}
	for _, src := range tests {
		env := NewEnvironment()
		if err := env.ParseDescription("test", src); err == nil {
			t.Errorf("ParseDescription(%q) expected error, got nil", src)
		}
	}
}
