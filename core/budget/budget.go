// Package budget balances a radio link budget.
//
// Each evaluation cycle computes the closure error of the budget, i.e. the
// surplus (positive) or deficit (negative) in dB of
//
//	(tx power + gains) - (noise floor + losses + path loss + snr)
//
// and moves exactly one quantity, the calculation target, so that the budget
// balances. All terms are linear in dB, except the path loss, which is
// inverted in closed form, so a single cycle reaches the equilibrium.
package budget

import (
	"fmt"
	"math"

	"github.com/ftl/linkbudget/core"
	"github.com/ftl/linkbudget/core/friis"
	"github.com/ftl/linkbudget/core/noise"
)

// Breakdown contains all derived terms of one evaluation of the link budget.
type Breakdown struct {
	NoiseFloor   float64 // dBm
	PathLoss     core.DB
	Gains        core.DB
	Losses       core.DB
	RxPower      float64 // dBm required at the receiver to reach the SNR
	Wavelength   float64 // m
	ClosureError core.DB
}

// Tolerance of the closure error in dB, covering the rounding of a balanced budget.
const Tolerance = 1e-9

// Closes indicates if the link closes, i.e. the budget has no deficit beyond the tolerance.
func (b Breakdown) Closes() bool {
	return b.ClosureError >= -Tolerance
}

// Finite indicates if all inputs of the budget were valid.
func (b Breakdown) Finite() bool {
	return isFinite(float64(b.ClosureError))
}

// Evaluate the link budget for the given parameters.
func Evaluate(p core.LinkParameters) Breakdown {
	noiseFloor := noise.NoiseFloorDBm(p.Temperature, float64(p.Bandwidth))
	pathLoss := pathLoss(p)

	positive := p.TxPower.DBm + float64(p.Gains)
	negative := noiseFloor + float64(p.Losses) + pathLoss + float64(p.SNR)

	return Breakdown{
		NoiseFloor:   noiseFloor,
		PathLoss:     core.DB(pathLoss),
		Gains:        p.Gains,
		Losses:       p.Losses,
		RxPower:      float64(p.SNR) + noiseFloor,
		Wavelength:   friis.Wavelength(float64(p.Frequency)),
		ClosureError: core.DB(positive - negative),
	}
}

// ClosureError of the link budget in dB. Positive values are a surplus, negative values a deficit.
func ClosureError(p core.LinkParameters) core.DB {
	return Evaluate(p).ClosureError
}

// EvaluateCycle runs one evaluation cycle and returns the parameters with the closure error applied to the given target.
// If the closure error or the new value of the target is not finite, the parameters are returned unchanged.
func EvaluateCycle(p core.LinkParameters, target core.CalculationTarget) core.LinkParameters {
	result, _, _ := Apply(p, target)
	return result
}

// Apply works like EvaluateCycle. It additionally returns the breakdown of the given parameters, whose closure error
// is the one absorbed by the target, and reports if the closure error was applied.
func Apply(p core.LinkParameters, target core.CalculationTarget) (core.LinkParameters, Breakdown, bool) {
	breakdown := Evaluate(p)
	closureError := float64(breakdown.ClosureError)
	if !isFinite(closureError) {
		return p, breakdown, false
	}

	result := p
	switch target {
	case core.TargetSNR:
		result.SNR += core.DB(closureError)
	case core.TargetTxPower:
		result.TxPower.DBm -= closureError
	case core.TargetDistance:
		newPathLoss := float64(breakdown.PathLoss) + closureError
		distance := friis.Distance(newPathLoss, p.BreakDistance, float64(p.Frequency), p.BreakExponent)
		if !isFinite(distance) {
			return p, breakdown, false
		}
		result.Distance = distance
	default:
		panic(fmt.Sprintf("unknown calculation target %v", target))
	}
	return result, breakdown, true
}

// Solve runs one evaluation cycle and returns the resulting parameters together with their breakdown.
func Solve(p core.LinkParameters, target core.CalculationTarget) (core.LinkParameters, Breakdown) {
	result := EvaluateCycle(p, target)
	return result, Evaluate(result)
}

func pathLoss(p core.LinkParameters) float64 {
	return friis.PathLoss(p.Distance, p.BreakDistance, float64(p.Frequency), p.BreakExponent)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
