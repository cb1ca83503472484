package provider

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// converterProvider handles "5 km in miles" style queries. Units only
// convert within their own family; a cross-family request produces no
// result rather than an error.
type converterProvider struct{}

func NewConverter(Deps) (Provider, error) {
	return &converterProvider{}, nil
}

func (*converterProvider) Mode() Mode         { return ModeConverter }
func (*converterProvider) Prefixes() []string { return []string{"convert"} }
func (*converterProvider) Synthetic() bool    { return true }

var conversionShape = regexp.MustCompile(`^(\d+\.?\d*)\s*([a-zA-Z]+)\s+(?:to|in)\s+([a-zA-Z]+)$`)

func (*converterProvider) List(_ context.Context, query string) ([]Result, error) {
	parts := conversionShape.FindStringSubmatch(strings.ToLower(strings.TrimSpace(query)))
	if parts == nil {
		return nil, nil
	}
	value, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, nil
	}
	from, to := parts[2], parts[3]

	converted, ok := Convert(value, from, to)
	if !ok {
		return nil, nil
	}

	text := FormatQuantity(converted)
	return []Result{{
		Title:    fmt.Sprintf("%s %s = %s %s", FormatQuantity(value), from, text, to),
		Subtitle: "Copy result",
		Icon:     "accessories-calculator",
		Score:    1,
		Action:   Action{Kind: ActionCopy, Text: text},
	}}, nil
}

// Convert converts value between two units of the same family.
func Convert(value float64, from, to string) (float64, bool) {
	if f, okFrom := temperatureUnits[from]; okFrom {
		t, okTo := temperatureUnits[to]
		if !okTo {
			return 0, false
		}
		return t.fromCelsius(f.toCelsius(value)), true
	}

	for _, family := range linearFamilies {
		fromFactor, okFrom := family[from]
		toFactor, okTo := family[to]
		if okFrom && okTo {
			return value * fromFactor / toFactor, true
		}
		if okFrom || okTo {
			return 0, false
		}
	}
	return 0, false
}

// FormatQuantity trims a converted value to four decimals.
func FormatQuantity(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	text := strconv.FormatFloat(v, 'f', 4, 64)
	text = strings.TrimRight(text, "0")
	text = strings.TrimRight(text, ".")
	return text
}

// Each linear family maps unit aliases to a factor into the family's
// base unit (meters, grams, seconds, bytes).
var linearFamilies = []map[string]float64{
	lengthUnits,
	weightUnits,
	timeUnits,
	dataUnits,
}

var lengthUnits = map[string]float64{
	"m": 1, "meter": 1, "meters": 1, "metre": 1, "metres": 1,
	"km": 1000, "kilometer": 1000, "kilometers": 1000,
	"cm": 0.01, "centimeter": 0.01, "centimeters": 0.01,
	"mm": 0.001, "millimeter": 0.001, "millimeters": 0.001,
	"mi": 1609.344, "mile": 1609.344, "miles": 1609.344,
	"ft": 0.3048, "foot": 0.3048, "feet": 0.3048,
	"in": 0.0254, "inch": 0.0254, "inches": 0.0254,
	"yd": 0.9144, "yard": 0.9144, "yards": 0.9144,
}

var weightUnits = map[string]float64{
	"g": 1, "gram": 1, "grams": 1,
	"kg": 1000, "kilogram": 1000, "kilograms": 1000,
	"mg": 0.001, "milligram": 0.001, "milligrams": 0.001,
	"lb": 453.592, "lbs": 453.592, "pound": 453.592, "pounds": 453.592,
	"oz": 28.3495, "ounce": 28.3495, "ounces": 28.3495,
	"t": 1e6, "ton": 1e6, "tons": 1e6, "tonne": 1e6, "tonnes": 1e6,
}

var timeUnits = map[string]float64{
	"s": 1, "sec": 1, "second": 1, "seconds": 1,
	"ms": 0.001, "millisecond": 0.001, "milliseconds": 0.001,
	"min": 60, "minute": 60, "minutes": 60,
	"h": 3600, "hr": 3600, "hour": 3600, "hours": 3600,
	"d": 86400, "day": 86400, "days": 86400,
	"w": 604800, "week": 604800, "weeks": 604800,
	"y": 31536000, "year": 31536000, "years": 31536000,
}

var dataUnits = map[string]float64{
	"b": 1, "byte": 1, "bytes": 1,
	"kb": 1 << 10, "kilobyte": 1 << 10, "kilobytes": 1 << 10,
	"mb": 1 << 20, "megabyte": 1 << 20, "megabytes": 1 << 20,
	"gb": 1 << 30, "gigabyte": 1 << 30, "gigabytes": 1 << 30,
	"tb": 1 << 40, "terabyte": 1 << 40, "terabytes": 1 << 40,
}

type temperatureUnit struct {
	toCelsius   func(float64) float64
	fromCelsius func(float64) float64
}

var temperatureUnits = map[string]temperatureUnit{
	"c":       {func(v float64) float64 { return v }, func(v float64) float64 { return v }},
	"celsius": {func(v float64) float64 { return v }, func(v float64) float64 { return v }},
	"f":          {fahrenheitToCelsius, celsiusToFahrenheit},
	"fahrenheit": {fahrenheitToCelsius, celsiusToFahrenheit},
	"k":      {kelvinToCelsius, celsiusToKelvin},
	"kelvin": {kelvinToCelsius, celsiusToKelvin},
}

func fahrenheitToCelsius(v float64) float64 { return (v - 32) * 5 / 9 }
func celsiusToFahrenheit(v float64) float64 { return v*9/5 + 32 }
func kelvinToCelsius(v float64) float64     { return v - 273.15 }
func celsiusToKelvin(v float64) float64     { return v + 273.15 }
