package noise

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoiseFloor(t *testing.T) {
	tt := []struct {
		temperature float64
		bandwidth   float64
		expected    float64
	}{
		{290, 20e6, -100.9648872375883},
		{290, 1, -173.97518719422808},
		{290, 1e6, -113.97518719422811},
	}

	for _, tc := range tt {
		t.Run(fmt.Sprintf("%gK %gHz", tc.temperature, tc.bandwidth), func(t *testing.T) {
			assert.InDelta(t, tc.expected, NoiseFloorDBm(tc.temperature, tc.bandwidth), 1e-9)
		})
	}
}

func TestNoiseTemperatureRoundtrip(t *testing.T) {
	for _, temperature := range []float64{1, 77, 290, 1000} {
		for _, bandwidth := range []float64{1, 12.5e3, 20e6} {
			t.Run(fmt.Sprintf("%gK %gHz", temperature, bandwidth), func(t *testing.T) {
				power := ThermalNoisePower(temperature, bandwidth)
				assert.InEpsilon(t, temperature, ThermalNoiseTemperature(power, bandwidth), 1e-12)
			})
		}
	}
}

func TestDegenerateNoiseFloor(t *testing.T) {
	assert.True(t, math.IsInf(NoiseFloorDBm(290, 0), -1))
	assert.True(t, math.IsInf(NoiseFloorDBm(0, 20e6), -1))
	assert.True(t, math.IsNaN(NoiseFloorDBm(-10, 20e6)))
}
