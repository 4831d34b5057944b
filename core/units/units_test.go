package units

import (
	"fmt"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var powerSamples = []float64{-174, -100.9648872375883, -30, -1e-9, 0, 1e-9, 0.5, 13, 30, 36.99, 60, 123.456}

func TestPowerRoundtrip(t *testing.T) {
	for _, dbm := range powerSamples {
		t.Run(fmt.Sprintf("%g", dbm), func(t *testing.T) {
			assert.InDelta(t, dbm, MilliwattToDBm(DBmToMilliwatt(dbm)), 1e-9*math.Max(1, math.Abs(dbm)))
			assert.InDelta(t, dbm, WattToDBm(DBmToWatt(dbm)), 1e-9*math.Max(1, math.Abs(dbm)))
			assert.InDelta(t, dbm, DBWToDBm(DBmToDBW(dbm)), 1e-9*math.Max(1, math.Abs(dbm)))
		})
	}
}

func TestLinearRoundtrip(t *testing.T) {
	for _, w := range []float64{1e-15, 1e-3, 0.25, 1, 5, 100, 1e6} {
		t.Run(fmt.Sprintf("%g", w), func(t *testing.T) {
			assert.InEpsilon(t, w, DBmToWatt(WattToDBm(w)), 1e-9)
			assert.InEpsilon(t, w, DBmToMilliwatt(MilliwattToDBm(w)), 1e-9)
		})
	}
}

func TestPowerConversion(t *testing.T) {
	tt := []struct {
		value    float64
		from     PowerUnit
		to       PowerUnit
		expected float64
	}{
		{0, DBm, Milliwatt, 1},
		{0, DBm, Watt, 0.001},
		{0, DBm, DBW, -30},
		{30, DBm, Watt, 1},
		{1, Watt, DBm, 30},
		{1, Watt, DBW, 0},
		{100, Milliwatt, DBm, 20},
		{100, Milliwatt, Watt, 0.1},
		{10, DBW, Watt, 10},
		{-3, DBW, DBW, -3},
	}

	for _, tc := range tt {
		t.Run(fmt.Sprintf("%g %v to %v", tc.value, tc.from, tc.to), func(t *testing.T) {
			assert.InDelta(t, tc.expected, ConvertPower(tc.value, tc.from, tc.to), 1e-12)
		})
	}
}

func TestNonPositiveLinearPowerIsNotFinite(t *testing.T) {
	assert.True(t, math.IsInf(WattToDBm(0), -1))
	assert.True(t, math.IsNaN(MilliwattToDBm(-1)))
}

func TestParsePowerUnit(t *testing.T) {
	for _, u := range PowerUnits() {
		parsed, err := ParsePowerUnit(u.String())
		require.NoError(t, err)
		assert.Equal(t, u, parsed)
	}

	parsed, err := ParsePowerUnit(" dbw ")
	require.NoError(t, err)
	assert.Equal(t, DBW, parsed)

	_, err = ParsePowerUnit("hp")
	assert.Error(t, err)
}

func TestParseMetricPrefixed(t *testing.T) {
	tt := []struct {
		text     string
		expected float64
	}{
		{"0", 0},
		{"20e6", 20e6},
		{"20M", 20e6},
		{"20 M", 20e6},
		{" 2.4G ", 2.4e9},
		{"1k", 1e3},
		{"1K", 1e3},
		{"-3.5k", -3.5e3},
		{"1T", 1e12},
		{"1P", 1e15},
		{"1E", 1e18},
		{"1Z", 1e21},
		{"1Y", 1e24},
		{"500", 500},
	}

	for _, tc := range tt {
		t.Run(tc.text, func(t *testing.T) {
			actual, err := ParseMetricPrefixed(tc.text)
			require.NoError(t, err)
			assert.InEpsilon(t, tc.expected+1, actual+1, 1e-12)
		})
	}
}

func TestParseMetricPrefixedFails(t *testing.T) {
	for _, text := range []string{"", "  ", "M", "abc", "20 m", "20µ", "20X", "1.2.3k", "k20", "inf", "NaN", "1e400"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseMetricPrefixed(text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidMagnitude), err.Error())
		})
	}
}

func TestFormatMetricPrefixed(t *testing.T) {
	tt := []struct {
		value    float64
		expected string
	}{
		{0, "0 "},
		{500, "500 "},
		{999.5, "999.5 "},
		{1000, "1.0 k"},
		{20e6, "20.0 M"},
		{2.4e9, "2.4 G"},
		{-2.4e9, "-2.4 G"},
		{1e24, "1.0 Y"},
		{5e27, "5000.0 Y"},
	}

	for _, tc := range tt {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatMetricPrefixed(tc.value))
		})
	}
}

func TestFormatParseRoundtrip(t *testing.T) {
	for _, value := range []float64{0, 42, 1e3, 20e6, 2.4e9, 5.8e9, 1.5e12} {
		t.Run(fmt.Sprintf("%g", value), func(t *testing.T) {
			actual, err := ParseMetricPrefixed(FormatMetricPrefixed(value))
			require.NoError(t, err)
			assert.InDelta(t, value, actual, value*0.05+1e-12)
		})
	}
}
