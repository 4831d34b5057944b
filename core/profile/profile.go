// Package profile stores a link as a YAML file: the link parameters together with the named gains and losses.
package profile

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/ftl/linkbudget/core"
	"github.com/ftl/linkbudget/core/units"
)

// DefaultValue of a newly added gain or loss in dB.
const DefaultValue = 10.0

// Profile of a link.
type Profile struct {
	Temperature   float64 `yaml:"temperature"`
	Bandwidth     float64 `yaml:"bandwidth"`
	Frequency     float64 `yaml:"frequency"`
	Distance      float64 `yaml:"distance"`
	BreakDistance float64 `yaml:"break_distance"`
	BreakExponent float64 `yaml:"break_exponent"`
	SNR           float64 `yaml:"snr"`
	TxPower       float64 `yaml:"tx_power"` // dBm
	TxPowerUnit   string  `yaml:"tx_power_unit"`
	Target        string  `yaml:"target"`

	Gains  Named `yaml:"gains,omitempty"`
	Losses Named `yaml:"losses,omitempty"`
}

// New returns a profile with the given parameters and no named gains or losses.
func New(p core.LinkParameters, target core.CalculationTarget) *Profile {
	result := &Profile{
		Gains:  Named{},
		Losses: Named{},
	}
	result.Update(p, target)
	return result
}

// Update the profile with the given parameters. The sums of gains and losses are ignored, the named values stay untouched.
func (p *Profile) Update(params core.LinkParameters, target core.CalculationTarget) {
	p.Temperature = params.Temperature
	p.Bandwidth = float64(params.Bandwidth)
	p.Frequency = float64(params.Frequency)
	p.Distance = params.Distance
	p.BreakDistance = params.BreakDistance
	p.BreakExponent = params.BreakExponent
	p.SNR = float64(params.SNR)
	p.TxPower = params.TxPower.DBm
	p.TxPowerUnit = params.TxPower.Unit.String()
	p.Target = target.String()
}

// Parameters returns the link parameters and the calculation target of this profile.
func (p *Profile) Parameters() (core.LinkParameters, core.CalculationTarget, error) {
	unit := units.DBm
	if p.TxPowerUnit != "" {
		var err error
		unit, err = units.ParsePowerUnit(p.TxPowerUnit)
		if err != nil {
			return core.LinkParameters{}, core.TargetSNR, errors.Wrap(err, "invalid tx power unit")
		}
	}
	target := core.TargetSNR
	if p.Target != "" {
		var err error
		target, err = core.ParseCalculationTarget(p.Target)
		if err != nil {
			return core.LinkParameters{}, core.TargetSNR, errors.Wrap(err, "invalid target")
		}
	}

	result := core.LinkParameters{
		Temperature:   p.Temperature,
		Bandwidth:     core.Frequency(p.Bandwidth),
		Frequency:     core.Frequency(p.Frequency),
		Distance:      p.Distance,
		BreakDistance: p.BreakDistance,
		BreakExponent: p.BreakExponent,
		Gains:         core.DB(p.Gains.Total()),
		Losses:        core.DB(p.Losses.Total()),
		SNR:           core.DB(p.SNR),
		TxPower:       core.Power{DBm: p.TxPower, Unit: unit},
	}
	return result, target, nil
}

// Read the profile from the given reader. Values that are not contained in the input stay unchanged,
// named gains or losses contained in the input replace the current ones. If the input is invalid, the profile stays unchanged.
func (p *Profile) Read(r io.Reader) error {
	read := *p
	read.Gains = nil
	read.Losses = nil

	err := yaml.NewDecoder(r).Decode(&read)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "cannot decode profile")
	}
	if _, _, err := read.Parameters(); err != nil {
		return err
	}

	if read.Gains == nil {
		read.Gains = p.Gains
	}
	if read.Losses == nil {
		read.Losses = p.Losses
	}
	*p = read
	return nil
}

// ReadFile reads the profile from the given file.
func (p *Profile) ReadFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "cannot open profile")
	}
	defer file.Close()

	return errors.Wrapf(p.Read(file), "cannot read profile %s", filename)
}

// Write the profile to the given writer.
func (p *Profile) Write(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	if err := encoder.Encode(p); err != nil {
		return errors.Wrap(err, "cannot encode profile")
	}
	return encoder.Close()
}

// WriteFile writes the profile to the given file.
func (p *Profile) WriteFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "cannot create profile")
	}
	if err := p.Write(file); err != nil {
		file.Close()
		return errors.Wrapf(err, "cannot write profile %s", filename)
	}
	return file.Close()
}

// Named gains or losses in dB.
type Named map[string]float64

// Add a new entry with the default value. Empty names and names that already exist are ignored.
func (n Named) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if _, ok := n[name]; ok {
		return false
	}
	n[name] = DefaultValue
	return true
}

// Set the value of the given entry, adding it if necessary.
func (n Named) Set(name string, value float64) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	n[name] = value
}

// Remove the given entry.
func (n Named) Remove(name string) {
	delete(n, name)
}

// Rename the given entry, keeping its value.
func (n Named) Rename(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	value, ok := n[oldName]
	if !ok {
		return errors.Errorf("%q does not exist", oldName)
	}
	if newName == "" {
		return errors.New("the new name must not be empty")
	}
	if newName == oldName {
		return nil
	}
	if _, ok := n[newName]; ok {
		return errors.Errorf("%q already exists", newName)
	}
	delete(n, oldName)
	n[newName] = value
	return nil
}

// Names in alphabetical order.
func (n Named) Names() []string {
	result := make([]string, 0, len(n))
	for name := range n {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Total of all values in dB.
func (n Named) Total() float64 {
	var result float64
	for _, name := range n.Names() {
		result += n[name]
	}
	return result
}
