package roots

import (
	"fmt"
	"strings"
)

// Method identifies one of the solvers.
type Method int

const (
	MethodBisection Method = iota + 1
	MethodNewton
	MethodSecant
)

var methodNames = map[Method]string{
	MethodBisection: "bisection",
	MethodNewton:    "newton",
	MethodSecant:    "secant",
}

// aliases maps every accepted spelling, lowercased, to its method.
var aliases = map[string]Method{
	"bisection": MethodBisection,
	"bisect":    MethodBisection,
	"bissecao":  MethodBisection,
	"bisseção":  MethodBisection,
	"bisseccao": MethodBisection,
	"bissecção": MethodBisection,
	"bissec":    MethodBisection,
	"bisec":     MethodBisection,
	"bi":        MethodBisection,
	"b":         MethodBisection,

	"newton":         MethodNewton,
	"raphson":        MethodNewton,
	"newton-raphson": MethodNewton,
	"newton_raphson": MethodNewton,
	"newtonraphson":  MethodNewton,
	"new":            MethodNewton,
	"nr":             MethodNewton,
	"n":              MethodNewton,

	"secant":  MethodSecant,
	"secante": MethodSecant,
	"sec":     MethodSecant,
	"s":       MethodSecant,
}

// Methods lists the solvers in a stable order.
func Methods() []Method {
	return []Method{MethodBisection, MethodNewton, MethodSecant}
}

// ParseMethod resolves a method name or alias, ignoring case and surrounding space.
func ParseMethod(name string) (Method, error) {
	m, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q (use bisection, newton or secant)", ErrInvalidMethod, name)
	}
	return m, nil
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

func (m Method) MarshalText() ([]byte, error) {
	if _, ok := methodNames[m]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMethod, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
