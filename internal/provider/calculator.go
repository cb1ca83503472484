package provider

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// calculatorProvider evaluates arithmetic typed straight into the
// launcher. It never errors out of List: an unparseable expression
// just produces no result.
type calculatorProvider struct{}

func NewCalculator(Deps) (Provider, error) {
	return &calculatorProvider{}, nil
}

func (*calculatorProvider) Mode() Mode         { return ModeCalculator }
func (*calculatorProvider) Prefixes() []string { return []string{"calc", "="} }
func (*calculatorProvider) Synthetic() bool    { return true }

func (*calculatorProvider) List(_ context.Context, query string) ([]Result, error) {
	value, err := Evaluate(query)
	if err != nil {
		return nil, nil
	}
	text := FormatNumber(value)
	return []Result{{
		Title:    text,
		Subtitle: strings.TrimSpace(query) + " =",
		Icon:     "accessories-calculator",
		Score:    1,
		Action:   Action{Kind: ActionCopy, Text: text},
	}}, nil
}

// Evaluate parses and computes an arithmetic expression. Supported:
// + - * / %, ^ and ** for powers, parentheses, unary sign, the
// functions sqrt sin cos tan log ln abs floor ceil round, and the
// constants pi and e.
func Evaluate(expr string) (float64, error) {
	normalized := strings.ToLower(strings.TrimSpace(expr))
	normalized = strings.ReplaceAll(normalized, "×", "*")
	normalized = strings.ReplaceAll(normalized, "÷", "/")
	normalized = strings.ReplaceAll(normalized, " x ", " * ")

	p := &exprParser{input: []rune(normalized)}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected input at %q", string(p.input[p.pos:]))
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("expression has no finite value")
	}
	return value, nil
}

// FormatNumber renders integers bare and everything else with up to
// six decimals, trailing zeros trimmed.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	text := strconv.FormatFloat(v, 'f', 6, 64)
	text = strings.TrimRight(text, "0")
	text = strings.TrimRight(text, ".")
	return text
}

type exprParser struct {
	input []rune
	pos   int
}

func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch {
		case p.accept('+'):
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case p.accept('-'):
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch {
		case p.accept('*'):
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			left *= right
		case p.accept('/'):
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		case p.accept('%'):
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("modulo by zero")
			}
			left = math.Mod(left, right)
		default:
			return left, nil
		}
	}
}

// parsePower handles ^ and ** right-associatively.
func (p *exprParser) parsePower() (float64, error) {
	base, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.acceptWord("**") || p.accept('^') {
		exp, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (p *exprParser) parseUnary() (float64, error) {
	p.skipSpaces()
	if p.accept('-') {
		value, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -value, nil
	}
	if p.accept('+') {
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (float64, error) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("unexpected end of expression")
	}

	if p.accept('(') {
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if !p.accept(')') {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		return value, nil
	}

	if unicode.IsDigit(p.input[p.pos]) || p.input[p.pos] == '.' {
		return p.parseNumber()
	}
	if unicode.IsLetter(p.input[p.pos]) {
		return p.parseIdentifier()
	}
	return 0, fmt.Errorf("unexpected character %q", p.input[p.pos])
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && (unicode.IsDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	value, err := strconv.ParseFloat(string(p.input[start:p.pos]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", string(p.input[start:p.pos]))
	}
	return value, nil
}

func (p *exprParser) parseIdentifier() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && unicode.IsLetter(p.input[p.pos]) {
		p.pos++
	}
	name := string(p.input[start:p.pos])

	switch name {
	case "pi":
		return math.Pi, nil
	case "e":
		return math.E, nil
	}

	p.skipSpaces()
	if !p.accept('(') {
		return 0, fmt.Errorf("unknown identifier %q", name)
	}
	arg, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if !p.accept(')') {
		return 0, fmt.Errorf("missing closing parenthesis after %s", name)
	}

	switch name {
	case "sqrt":
		if arg < 0 {
			return 0, fmt.Errorf("sqrt of negative number")
		}
		return math.Sqrt(arg), nil
	case "sin":
		return math.Sin(arg), nil
	case "cos":
		return math.Cos(arg), nil
	case "tan":
		return math.Tan(arg), nil
	case "log":
		return math.Log10(arg), nil
	case "ln":
		return math.Log(arg), nil
	case "abs":
		return math.Abs(arg), nil
	case "floor":
		return math.Floor(arg), nil
	case "ceil":
		return math.Ceil(arg), nil
	case "round":
		return math.Round(arg), nil
	default:
		return 0, fmt.Errorf("unknown function %q", name)
	}
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *exprParser) accept(ch rune) bool {
	if p.pos < len(p.input) && p.input[p.pos] == ch {
		p.pos++
		return true
	}
	return false
}

func (p *exprParser) acceptWord(word string) bool {
	runes := []rune(word)
	if p.pos+len(runes) > len(p.input) {
		return false
	}
	for i, ch := range runes {
		if p.input[p.pos+i] != ch {
			return false
		}
	}
	p.pos += len(runes)
	return true
}
