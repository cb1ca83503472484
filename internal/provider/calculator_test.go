package provider

import (
	"context"
	"math"
	"testing"
)

func TestEvaluateBasicArithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"2+2", 4},
		{"10 - 5", 5},
		{"6 * 7", 42},
		{"8 / 2", 4},
		{"17 % 5", 2},
		{"2 ^ 8", 256},
		{"2 ** 10", 1024},
		{"3 * (4 + 1)", 15},
		{"-4 + 10", 6},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"2 ^ 3 ^ 2", 512},
	}
	for _, tc := range cases {
		got, err := Evaluate(tc.expr)
		if err != nil {
			t.Fatalf("Evaluate(%q) failed: %v", tc.expr, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Evaluate(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestEvaluateFunctionsAndConstants(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"sqrt(16)", 4},
		{"abs(-7)", 7},
		{"floor(3.9)", 3},
		{"ceil(3.1)", 4},
		{"round(2.5)", 3},
		{"log(1000)", 3},
		{"ln(e)", 1},
		{"sin(0)", 0},
		{"cos(0)", 1},
		{"pi", math.Pi},
	}
	for _, tc := range cases {
		got, err := Evaluate(tc.expr)
		if err != nil {
			t.Fatalf("Evaluate(%q) failed: %v", tc.expr, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Evaluate(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestEvaluateRejectsBadExpressions(t *testing.T) {
	for _, expr := range []string{"5 / 0", "17 % 0", "sqrt(-1)", "2 +", "(3", "nonsense(4)", "2 $ 3"} {
		if _, err := Evaluate(expr); err == nil {
			t.Fatalf("expected Evaluate(%q) to fail", expr)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{4, "4"},
		{-12, "-12"},
		{2.5, "2.5"},
		{1.0 / 3.0, "0.333333"},
		{0.1000001, "0.1"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCalculatorListProducesCopyAction(t *testing.T) {
	p, err := NewCalculator(Deps{})
	if err != nil {
		t.Fatalf("NewCalculator failed: %v", err)
	}

	results, err := p.List(context.Background(), "2+2")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected a single result, got %d", len(results))
	}
	if results[0].Title != "4" {
		t.Fatalf("expected title 4, got %q", results[0].Title)
	}
	if results[0].Action.Kind != ActionCopy || results[0].Action.Text != "4" {
		t.Fatalf("unexpected action: %+v", results[0].Action)
	}
}

func TestCalculatorListSilentOnDivisionByZero(t *testing.T) {
	p, _ := NewCalculator(Deps{})
	results, err := p.List(context.Background(), "5/0")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results for division by zero, got %d", len(results))
	}
}
