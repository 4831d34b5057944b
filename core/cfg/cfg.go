package cfg

import (
	"log"

	"github.com/ftl/hamradio/cfg"

	"github.com/ftl/linkbudget/core"
	"github.com/ftl/linkbudget/core/units"
)

const (
	temperature   cfg.Key = "linkbudget.temperature"
	bandwidth     cfg.Key = "linkbudget.bandwidth"
	frequency     cfg.Key = "linkbudget.frequency"
	distance      cfg.Key = "linkbudget.distance"
	breakDistance cfg.Key = "linkbudget.breakDistance"
	breakExponent cfg.Key = "linkbudget.breakExponent"
	snr           cfg.Key = "linkbudget.snr"
	txPower       cfg.Key = "linkbudget.txPower"
	txPowerUnit   cfg.Key = "linkbudget.txPowerUnit"
	target        cfg.Key = "linkbudget.target"
	rigHost       cfg.Key = "linkbudget.rigHost"
	refreshRate   cfg.Key = "linkbudget.refreshRate"
	profile       cfg.Key = "linkbudget.profile"
)

// GetFunc returns the configuration value for the given key or the default value if the key is not set.
type GetFunc func(key cfg.Key, defaultValue interface{}) interface{}

// Load the configuration from the default hamradio configuration file.
func Load() (core.Configuration, error) {
	configuration, err := cfg.LoadDefault()
	if err != nil {
		return core.Configuration{}, err
	}

	return fromGetter(configuration.Get), nil
}

// fromGetter reads the configuration through the given getter, using the static configuration for missing values.
func fromGetter(get GetFunc) core.Configuration {
	defaults := Static()
	p := defaults.Parameters

	result := core.Configuration{
		Parameters: core.LinkParameters{
			Temperature:   getFloat(get, temperature, p.Temperature),
			Bandwidth:     core.Frequency(getFloat(get, bandwidth, float64(p.Bandwidth))),
			Frequency:     core.Frequency(getFloat(get, frequency, float64(p.Frequency))),
			Distance:      getFloat(get, distance, p.Distance),
			BreakDistance: getFloat(get, breakDistance, p.BreakDistance),
			BreakExponent: getFloat(get, breakExponent, p.BreakExponent),
			SNR:           core.DB(getFloat(get, snr, float64(p.SNR))),
			TxPower: core.Power{
				DBm:  getFloat(get, txPower, p.TxPower.DBm),
				Unit: p.TxPower.Unit,
			},
		},
		Target:      defaults.Target,
		RigHost:     getString(get, rigHost, defaults.RigHost),
		RefreshRate: int(getFloat(get, refreshRate, float64(defaults.RefreshRate))),
		Profile:     getString(get, profile, defaults.Profile),
	}

	if s := getString(get, txPowerUnit, ""); s != "" {
		unit, err := units.ParsePowerUnit(s)
		if err != nil {
			log.Printf("%s: %v", txPowerUnit, err)
		} else {
			result.Parameters.TxPower.Unit = unit
		}
	}
	if s := getString(get, target, ""); s != "" {
		t, err := core.ParseCalculationTarget(s)
		if err != nil {
			log.Printf("%s: %v", target, err)
		} else {
			result.Target = t
		}
	}
	if result.RefreshRate <= 0 {
		log.Printf("%s: %d is not a valid refresh rate", refreshRate, result.RefreshRate)
		result.RefreshRate = defaults.RefreshRate
	}

	return result
}

// Static returns the default configuration.
func Static() core.Configuration {
	return core.Configuration{
		Parameters: core.LinkParameters{
			Temperature:   290,
			Bandwidth:     20e6,
			Frequency:     2.4e9,
			Distance:      2000,
			BreakDistance: 500,
			BreakExponent: 4.3,
			SNR:           10,
			TxPower:       core.PowerDBm(0),
		},
		Target:      core.TargetSNR,
		RefreshRate: 25,
	}
}

func getFloat(get GetFunc, key cfg.Key, defaultValue float64) float64 {
	switch v := get(key, defaultValue).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		value, err := units.ParseMetricPrefixed(v)
		if err != nil {
			log.Printf("%s: %v", key, err)
			return defaultValue
		}
		return value
	default:
		log.Printf("%s: %v is not a number", key, v)
		return defaultValue
	}
}

func getString(get GetFunc, key cfg.Key, defaultValue string) string {
	v, ok := get(key, defaultValue).(string)
	if !ok {
		log.Printf("%s: not a string", key)
		return defaultValue
	}
	return v
}
