package expr

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var errSyntax = errors.New("syntax error")

var operators = []string{"**", "<=", ">=", "==", "!=", "=~", "!~", "&&", "||", "<<", ">>", "??"}

// rewritePowers turns "^" into govaluate's "**" with the usual precedence.
// Each power is emitted as its own group, right-folded, so "2^3^2" reads
// 2**(3**2) and a leading minus in "-x^2" negates the whole power.
func rewritePowers(src string) (string, error) {
	toks, err := tokenize(src)
	if err != nil {
		return "", err
	}

	p := &powerParser{toks: toks}
	out, err := p.sequence(false)
	if err != nil {
		return "", err
	}
	return out, nil
}

type powerParser struct {
	toks []string
	pos  int
}

func (p *powerParser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

// sequence copies tokens up to the end of input, or up to the closing
// parenthesis when nested, replacing every operand by its power group.
func (p *powerParser) sequence(nested bool) (string, error) {
	var parts []string
	for p.pos < len(p.toks) {
		tok := p.peek()
		switch {
		case tok == ")":
			if !nested {
				return "", fmt.Errorf("%w: unbalanced )", errSyntax)
			}
			return strings.Join(parts, " "), nil
		case tok == "^":
			return "", fmt.Errorf("%w: ^ without a base", errSyntax)
		case operand(tok):
			s, err := p.power()
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		default:
			parts = append(parts, tok)
			p.pos++
		}
	}

	if nested {
		return "", fmt.Errorf("%w: missing )", errSyntax)
	}
	return strings.Join(parts, " "), nil
}

// power reads base [^ [signs] power].
func (p *powerParser) power() (string, error) {
	base, err := p.primary()
	if err != nil {
		return "", err
	}
	if p.peek() != "^" {
		return base, nil
	}
	p.pos++

	signs := ""
	for p.peek() == "-" || p.peek() == "+" {
		signs += p.peek()
		p.pos++
	}
	if !operand(p.peek()) {
		return "", fmt.Errorf("%w: ^ without an exponent", errSyntax)
	}

	exp, err := p.power()
	if err != nil {
		return "", err
	}
	if signs != "" {
		exp = "(" + signs + exp + ")"
	}
	return "(" + base + " ** " + exp + ")", nil
}

func (p *powerParser) primary() (string, error) {
	tok := p.peek()
	p.pos++

	if tok != "(" && !isIdent(tok) {
		return tok, nil
	}

	head := ""
	if tok != "(" {
		if p.peek() != "(" {
			return tok, nil
		}
		head = tok
		p.pos++
	}

	inner, err := p.sequence(true)
	if err != nil {
		return "", err
	}
	p.pos++
	return head + "(" + inner + ")", nil
}

func operand(tok string) bool {
	return tok == "(" || isIdent(tok) || isNumber(tok)
}

func isIdent(tok string) bool {
	r := []rune(tok)
	return len(r) > 0 && (unicode.IsLetter(r[0]) || r[0] == '_')
}

func isNumber(tok string) bool {
	return tok != "" && (unicode.IsDigit(rune(tok[0])) || (tok[0] == '.' && len(tok) > 1))
}

func tokenize(src string) ([]string, error) {
	var toks []string
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsLetter(r) || r == '_':
			j := i + 1
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			toks = append(toks, string(rs[i:j]))
			i = j
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			j := i + 1
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.') {
				j++
			}
			toks = append(toks, string(rs[i:j]))
			i = j
		case r == '\'' || r == '"' || r == '[':
			return nil, fmt.Errorf("%w: string and escaped operands are not supported", errSyntax)
		default:
			tok := string(r)
			for _, op := range operators {
				if strings.HasPrefix(string(rs[i:]), op) {
					tok = op
					break
				}
			}
			toks = append(toks, tok)
			i += len([]rune(tok))
		}
	}
	return toks, nil
}
