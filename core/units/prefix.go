package units

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrInvalidMagnitude indicates text that is not a number with an optional metric prefix.
var ErrInvalidMagnitude = errors.New("invalid magnitude")

// Prefix is a decimal metric prefix.
type Prefix struct {
	Symbol string
	Factor float64
}

// Prefixes from kilo to yotta, ascending.
var Prefixes = []Prefix{
	{"k", 1e3},
	{"M", 1e6},
	{"G", 1e9},
	{"T", 1e12},
	{"P", 1e15},
	{"E", 1e18},
	{"Z", 1e21},
	{"Y", 1e24},
}

func prefixFactor(symbol string) (float64, bool) {
	if symbol == "K" {
		symbol = "k"
	}
	for _, p := range Prefixes {
		if p.Symbol == symbol {
			return p.Factor, true
		}
	}
	return 0, false
}

// ParseMetricPrefixed parses a decimal number, optionally followed by a metric prefix, e.g. "20e6", "20M" or "2.4 G".
func ParseMetricPrefixed(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, errors.Wrap(ErrInvalidMagnitude, "empty value")
	}

	if value, err := strconv.ParseFloat(s, 64); err == nil {
		return finite(value, text)
	}

	last, size := utf8.DecodeLastRuneInString(s)
	factor, ok := prefixFactor(string(last))
	if !ok {
		return 0, errors.Wrapf(ErrInvalidMagnitude, "%q", text)
	}
	mantissa, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-size]), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidMagnitude, "%q", text)
	}
	return finite(mantissa*factor, text)
}

func finite(value float64, text string) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.Wrapf(ErrInvalidMagnitude, "%q is not finite", text)
	}
	return value, nil
}

// FormatMetricPrefixed formats the value with the largest metric prefix that keeps the mantissa at or above 1.
func FormatMetricPrefixed(value float64) string {
	magnitude := math.Abs(value)
	for i := len(Prefixes) - 1; i >= 0; i-- {
		p := Prefixes[i]
		if magnitude >= p.Factor {
			return strconv.FormatFloat(value/p.Factor, 'f', 1, 64) + " " + p.Symbol
		}
	}
	return strconv.FormatFloat(value, 'f', -1, 64) + " "
}
