package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/ftl/linkbudget/core/units"
)

// Frequency represents a frequency in Hz.
type Frequency float64

func (f Frequency) String() string {
	return units.FormatMetricPrefixed(float64(f)) + "Hz"
}

// FrequencyRange represents a range of frequencies.
type FrequencyRange struct {
	From, To Frequency
}

func (r FrequencyRange) String() string {
	return fmt.Sprintf("[%v,%v]", r.From, r.To)
}

// Width of the frequency range.
func (r FrequencyRange) Width() Frequency {
	return r.To - r.From
}

// Contains the given frequency.
func (r FrequencyRange) Contains(f Frequency) bool {
	return f >= r.From && f <= r.To
}

// DB represents decibel (dB).
type DB float64

func (f DB) String() string {
	return fmt.Sprintf("%.2fdB", f)
}

// Power is a power value, always kept in dBm. The unit is only used for display and entry.
type Power struct {
	DBm  float64
	Unit units.PowerUnit
}

// PowerDBm returns a power of the given dBm, displayed in dBm.
func PowerDBm(dbm float64) Power {
	return Power{DBm: dbm, Unit: units.DBm}
}

func (p Power) String() string {
	return fmt.Sprintf("%.2f %v", p.InUnit(), p.Unit)
}

// InUnit returns the power in its display unit.
func (p Power) InUnit() float64 {
	return units.FromDBm(p.DBm, p.Unit)
}

// SetFromUnit sets the power from a value given in its display unit.
func (p *Power) SetFromUnit(value float64) {
	p.DBm = units.ToDBm(value, p.Unit)
}

// CalculationTarget selects the one quantity that absorbs the closure error of the link budget.
type CalculationTarget int

// All calculation targets.
const (
	TargetSNR CalculationTarget = iota
	TargetDistance
	TargetTxPower
)

// CalculationTargets returns all calculation targets.
func CalculationTargets() []CalculationTarget {
	return []CalculationTarget{TargetSNR, TargetDistance, TargetTxPower}
}

func (t CalculationTarget) String() string {
	switch t {
	case TargetSNR:
		return "snr"
	case TargetDistance:
		return "distance"
	case TargetTxPower:
		return "txpower"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// ParseCalculationTarget returns the calculation target with the given name.
func ParseCalculationTarget(s string) (CalculationTarget, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "tx power", "tx_power", "tx-power":
		name = TargetTxPower.String()
	}
	for _, t := range CalculationTargets() {
		if name == t.String() {
			return t, nil
		}
	}
	return TargetSNR, errors.Errorf("unknown calculation target %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t CalculationTarget) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *CalculationTarget) UnmarshalText(text []byte) error {
	parsed, err := ParseCalculationTarget(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// LinkParameters is one snapshot of all inputs of the link budget.
type LinkParameters struct {
	Temperature   float64 // K
	Bandwidth     Frequency
	Frequency     Frequency
	Distance      float64 // m
	BreakDistance float64 // m
	BreakExponent float64
	Gains         DB // sum of all gains
	Losses        DB // sum of all losses
	SNR           DB
	TxPower       Power
}

// Configuration parameters of the application.
type Configuration struct {
	Parameters  LinkParameters
	Target      CalculationTarget
	RigHost     string
	RefreshRate int // evaluation cycles per second
	Profile     string
}
