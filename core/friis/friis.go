// Package friis implements a dual-slope free space path loss model.
//
// Up to the break distance the loss grows with the free space exponent 2,
// beyond it with the break exponent.
package friis

import "math"

// SpeedOfLight in m/s.
const SpeedOfLight = 299792458.0

// ReferenceLoss is the free space loss in dB at 1m and 1GHz.
const ReferenceLoss = 32.0

// Wavelength in m for the given frequency in Hz.
func Wavelength(frequency float64) float64 {
	return SpeedOfLight / frequency
}

func frequencyLoss(frequency float64) float64 {
	return 20 * math.Log10(frequency/1e9)
}

func nearFieldLoss(distance float64) float64 {
	return 20 * math.Log10(distance/1.0)
}

// PathLoss in dB over the given distance (m) with the given break distance (m), frequency (Hz) and break exponent.
func PathLoss(distance, breakDistance, frequency, breakExponent float64) float64 {
	var distanceLoss float64
	if distance < breakDistance {
		distanceLoss = nearFieldLoss(distance)
	} else {
		distanceLoss = nearFieldLoss(breakDistance) + breakExponent*10*math.Log10(distance/breakDistance)
	}
	return ReferenceLoss + frequencyLoss(frequency) + distanceLoss
}

// Distance in m at which the given path loss (dB) is reached. This is the inverse of PathLoss.
func Distance(pathLoss, breakDistance, frequency, breakExponent float64) float64 {
	distanceLoss := pathLoss - ReferenceLoss - frequencyLoss(frequency)
	lossAtBreak := nearFieldLoss(breakDistance)

	if distanceLoss <= lossAtBreak {
		return math.Pow(10, distanceLoss/20)
	}
	return math.Pow(10, (distanceLoss-lossAtBreak)/breakExponent/10) * breakDistance
}
