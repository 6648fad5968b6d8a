package object

import "testing"

func TestTypeOf(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{&Number{Value: 1}, "number"},
		{&Boolean{Value: true}, "boolean"},
		{&String{Value: "x"}, "string"},
		{&Array{}, "array"},
		{NewObject(), "object"},
		{&Null{}, "null"},
	}
	for _, tt := range tests {
		if got := TypeOf(tt.v); got != tt.want {
			t.Errorf("TypeOf(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestEqualPrimitives(t *testing.T) {
	if !Equal(&Number{Value: 3}, &Number{Value: 3}) {
		t.Error("expected equal numbers")
	}
	if Equal(&Number{Value: 3}, &Number{Value: 4}) {
		t.Error("expected unequal numbers")
	}
	if Equal(&Number{Value: 3}, &String{Value: "3"}) {
		t.Error("expected a number and a string with the same text to be unequal")
	}
	if !Equal(&Null{}, &Null{}) {
		t.Error("expected Null == Null")
	}
}

func TestEqualArraysStructural(t *testing.T) {
	a := &Array{Elements: []Value{&Number{Value: 1}, &String{Value: "x"}}}
	b := &Array{Elements: []Value{&Number{Value: 1}, &String{Value: "x"}}}
	if !Equal(a, b) {
		t.Error("expected deep-equal arrays to compare equal")
	}
	c := &Array{Elements: []Value{&Number{Value: 1}}}
	if Equal(a, c) {
		t.Error("expected arrays of different length to compare unequal")
	}
}

func TestEqualObjectsStructuralIgnoringKeyOrder(t *testing.T) {
	a := NewObject()
	a.Set("x", &Number{Value: 1})
	a.Set("y", &Number{Value: 2})

	b := NewObject()
	b.Set("y", &Number{Value: 2})
	b.Set("x", &Number{Value: 1})

	if !Equal(a, b) {
		t.Error("expected objects with the same pairs in different insertion order to compare equal")
	}
}

func TestObjectPreservesInsertionOrderOnOverwrite(t *testing.T) {
	o := NewObject()
	o.Set("a", &Number{Value: 1})
	o.Set("b", &Number{Value: 2})
	o.Set("a", &Number{Value: 99})

	want := []string{"a", "b"}
	if len(o.Keys) != len(want) {
		t.Fatalf("keys = %v, want %v", o.Keys, want)
	}
	for i, k := range want {
		if o.Keys[i] != k {
			t.Errorf("keys[%d] = %q, want %q", i, o.Keys[i], k)
		}
	}
	v, _ := o.Get("a")
	if v.(*Number).Value != 99 {
		t.Errorf("a = %d, want overwritten value 99", v.(*Number).Value)
	}
}

func TestToDisplayStringStringUnquoted(t *testing.T) {
	if got := ToDisplayString(&String{Value: "hi"}); got != "hi" {
		t.Errorf("got %q, want hi (unquoted)", got)
	}
}

func TestToDisplayStringNumberAndBoolean(t *testing.T) {
	if got := ToDisplayString(&Number{Value: 42}); got != "42" {
		t.Errorf("got %q, want 42", got)
	}
	if got := ToDisplayString(&Boolean{Value: false}); got != "false" {
		t.Errorf("got %q, want false", got)
	}
}
