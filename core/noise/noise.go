// Package noise models thermal (Johnson-Nyquist) noise.
package noise

import "github.com/ftl/linkbudget/core/units"

// Boltzmann constant in J/K.
const Boltzmann = 1.380649e-23

// ThermalNoisePower returns the thermal noise power in W at the given temperature (K) within the given bandwidth (Hz).
func ThermalNoisePower(temperature, bandwidth float64) float64 {
	return Boltzmann * temperature * bandwidth
}

// ThermalNoiseTemperature returns the noise temperature in K that corresponds to the given noise power (W) within the given bandwidth (Hz).
func ThermalNoiseTemperature(power, bandwidth float64) float64 {
	return power / bandwidth / Boltzmann
}

// NoiseFloorDBm returns the thermal noise power in dBm. Non-positive temperature or bandwidth give a non-finite result.
func NoiseFloorDBm(temperature, bandwidth float64) float64 {
	return units.WattToDBm(ThermalNoisePower(temperature, bandwidth))
}
