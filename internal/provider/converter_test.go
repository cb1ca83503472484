package provider

import (
	"context"
	"math"
	"strings"
	"testing"
)

func TestConvertWithinFamilies(t *testing.T) {
	cases := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{5, "km", "miles", 3.10686},
		{1, "mi", "m", 1609.344},
		{12, "in", "cm", 30.48},
		{2, "kg", "lb", 4.40925},
		{16, "oz", "g", 453.592},
		{90, "min", "h", 1.5},
		{2, "d", "hours", 48},
		{1, "gb", "mb", 1024},
		{2048, "kb", "mb", 2},
	}
	for _, tc := range cases {
		got, ok := Convert(tc.value, tc.from, tc.to)
		if !ok {
			t.Fatalf("Convert(%v, %q, %q) unexpectedly failed", tc.value, tc.from, tc.to)
		}
		if math.Abs(got-tc.want) > 1e-4 {
			t.Fatalf("Convert(%v, %q, %q) = %v, want %v", tc.value, tc.from, tc.to, got, tc.want)
		}
	}
}

func TestConvertTemperature(t *testing.T) {
	cases := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{100, "c", "f", 212},
		{32, "f", "c", 0},
		{0, "c", "k", 273.15},
		{300, "k", "c", 26.85},
		{212, "fahrenheit", "kelvin", 373.15},
	}
	for _, tc := range cases {
		got, ok := Convert(tc.value, tc.from, tc.to)
		if !ok {
			t.Fatalf("Convert(%v, %q, %q) unexpectedly failed", tc.value, tc.from, tc.to)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Convert(%v, %q, %q) = %v, want %v", tc.value, tc.from, tc.to, got, tc.want)
		}
	}
}

func TestConvertRejectsCrossFamily(t *testing.T) {
	cases := [][2]string{
		{"km", "kg"},
		{"c", "m"},
		{"gb", "miles"},
		{"min", "mm"},
		{"xx", "yy"},
	}
	for _, tc := range cases {
		if _, ok := Convert(1, tc[0], tc[1]); ok {
			t.Fatalf("expected Convert between %q and %q to fail", tc[0], tc[1])
		}
	}
}

func TestConverterListParsesQueryShapes(t *testing.T) {
	p, err := NewConverter(Deps{})
	if err != nil {
		t.Fatalf("NewConverter failed: %v", err)
	}

	for _, query := range []string{"5 km in miles", "5km to miles", "100 F to C"} {
		results, err := p.List(context.Background(), query)
		if err != nil {
			t.Fatalf("List(%q) failed: %v", query, err)
		}
		if len(results) != 1 {
			t.Fatalf("List(%q) returned %d results, want 1", query, len(results))
		}
		if results[0].Action.Kind != ActionCopy {
			t.Fatalf("expected copy action, got %+v", results[0].Action)
		}
	}
}

func TestConverterListResultText(t *testing.T) {
	p, _ := NewConverter(Deps{})
	results, err := p.List(context.Background(), "90 min in h")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected a single result, got %d", len(results))
	}
	if !strings.Contains(results[0].Title, "1.5 h") {
		t.Fatalf("unexpected title: %q", results[0].Title)
	}
	if results[0].Action.Text != "1.5" {
		t.Fatalf("unexpected copy text: %q", results[0].Action.Text)
	}
}

func TestConverterListSilentOnNonsense(t *testing.T) {
	p, _ := NewConverter(Deps{})
	for _, query := range []string{"5 km in kg", "banana to apple", "km in miles"} {
		results, err := p.List(context.Background(), query)
		if err != nil {
			t.Fatalf("List(%q) failed: %v", query, err)
		}
		if len(results) != 0 {
			t.Fatalf("expected no results for %q, got %d", query, len(results))
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{48, "48"},
		{1.5, "1.5"},
		{3.10686, "3.1069"},
		{0.5000, "0.5"},
	}
	for _, tc := range cases {
		if got := FormatQuantity(tc.in); got != tc.want {
			t.Fatalf("FormatQuantity(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
