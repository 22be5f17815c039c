package roots

import (
	"errors"
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name string
		want Method
	}{
		{"bissecao", MethodBisection},
		{"BISSEÇÃO", MethodBisection},
		{" bi ", MethodBisection},
		{"Bisection", MethodBisection},
		{"Newton-Raphson", MethodNewton},
		{"raphson", MethodNewton},
		{"N", MethodNewton},
		{"secante", MethodSecant},
		{"sec", MethodSecant},
	}

	for _, tt := range tests {
		got, err := ParseMethod(tt.name)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestParseMethod_Unknown(t *testing.T) {
	for _, name := range []string{"", "golden", "regula-falsi"} {
		if _, err := ParseMethod(name); !errors.Is(err, ErrInvalidMethod) {
			t.Errorf("%q: expected ErrInvalidMethod, got %v", name, err)
		}
	}
}

func TestMethodText(t *testing.T) {
	var m Method
	if err := m.UnmarshalText([]byte("nr")); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m != MethodNewton {
		t.Errorf("expected newton, got %s", m)
	}

	text, err := MethodSecant.MarshalText()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(text) != "secant" {
		t.Errorf("expected secant, got %s", text)
	}

	if _, err := Method(0).MarshalText(); !errors.Is(err, ErrInvalidMethod) {
		t.Errorf("expected ErrInvalidMethod for zero method, got %v", err)
	}
}
