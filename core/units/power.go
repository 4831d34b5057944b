package units

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// PowerUnit is the unit a power value is displayed in.
type PowerUnit int

// All power units.
const (
	DBm PowerUnit = iota
	DBW
	Milliwatt
	Watt
)

// PowerUnits returns all power units in display order.
func PowerUnits() []PowerUnit {
	return []PowerUnit{DBm, DBW, Milliwatt, Watt}
}

func (u PowerUnit) String() string {
	switch u {
	case DBm:
		return "dBm"
	case DBW:
		return "dBW"
	case Milliwatt:
		return "mW"
	case Watt:
		return "W"
	default:
		return "unknown"
	}
}

// ParsePowerUnit returns the power unit with the given name.
func ParsePowerUnit(s string) (PowerUnit, error) {
	name := strings.TrimSpace(s)
	for _, u := range PowerUnits() {
		if strings.EqualFold(name, u.String()) {
			return u, nil
		}
	}
	return DBm, errors.Errorf("unknown power unit %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (u PowerUnit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *PowerUnit) UnmarshalText(text []byte) error {
	parsed, err := ParsePowerUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// DBmToMilliwatt converts dBm to mW.
func DBmToMilliwatt(dbm float64) float64 {
	return math.Pow(10, dbm/10)
}

// MilliwattToDBm converts mW to dBm.
func MilliwattToDBm(mw float64) float64 {
	return 10 * math.Log10(mw)
}

// DBmToWatt converts dBm to W.
func DBmToWatt(dbm float64) float64 {
	return math.Pow(10, dbm/10) / 1000
}

// WattToDBm converts W to dBm.
func WattToDBm(w float64) float64 {
	return 10 * math.Log10(w*1000)
}

// DBmToDBW converts dBm to dBW.
func DBmToDBW(dbm float64) float64 {
	return dbm - 30
}

// DBWToDBm converts dBW to dBm.
func DBWToDBm(dbw float64) float64 {
	return dbw + 30
}

// FromDBm converts the given value in dBm into the given unit.
func FromDBm(dbm float64, to PowerUnit) float64 {
	switch to {
	case DBW:
		return DBmToDBW(dbm)
	case Milliwatt:
		return DBmToMilliwatt(dbm)
	case Watt:
		return DBmToWatt(dbm)
	default:
		return dbm
	}
}

// ToDBm converts the given value in the given unit into dBm.
func ToDBm(value float64, from PowerUnit) float64 {
	switch from {
	case DBW:
		return DBWToDBm(value)
	case Milliwatt:
		return MilliwattToDBm(value)
	case Watt:
		return WattToDBm(value)
	default:
		return value
	}
}

// ConvertPower converts a power value between two units.
func ConvertPower(value float64, from, to PowerUnit) float64 {
	if from == to {
		return value
	}
	return FromDBm(ToDBm(value, from), to)
}
