// Package report renders a link budget as an aligned text table.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/ftl/linkbudget/core"
	"github.com/ftl/linkbudget/core/bandplan"
	"github.com/ftl/linkbudget/core/budget"
	"github.com/ftl/linkbudget/core/units"
)

// Write the report of the given link to w.
func Write(w io.Writer, params core.LinkParameters, target core.CalculationTarget, breakdown budget.Breakdown) error {
	out := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	band := bandplan.Default.ByFrequency(params.Frequency)
	rows := []struct {
		label, value, marker string
	}{
		{"Frequency", params.Frequency.String(), string(band.Name)},
		{"Bandwidth", params.Bandwidth.String(), ""},
		{"Wavelength", length(breakdown.Wavelength), ""},
		{"Temperature", fmt.Sprintf("%.1f K", params.Temperature), ""},
		{"Noise floor", dBm(breakdown.NoiseFloor), ""},
		{"SNR", dB(params.SNR), marker(target, core.TargetSNR)},
		{"Rx power", dBm(breakdown.RxPower), ""},
		{"Distance", length(params.Distance), marker(target, core.TargetDistance)},
		{"Break distance", length(params.BreakDistance), ""},
		{"Break exponent", fmt.Sprintf("%.2f", params.BreakExponent), ""},
		{"Path loss", dB(breakdown.PathLoss), ""},
		{"Gains", dB(breakdown.Gains), ""},
		{"Losses", dB(breakdown.Losses), ""},
		{"TX power", txPower(params.TxPower), marker(target, core.TargetTxPower)},
		{"Closure error", dB(breakdown.ClosureError), ""},
		{"Result", result(breakdown), ""},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%s:\t%s\t%s\t\n", row.label, row.value, row.marker)
	}

	return errors.Wrap(out.Flush(), "cannot write report")
}

func marker(target, row core.CalculationTarget) string {
	if target == row {
		return "calculated"
	}
	return ""
}

func result(breakdown budget.Breakdown) string {
	switch {
	case !breakdown.Finite():
		return "invalid parameters"
	case breakdown.Closes():
		return "closes"
	default:
		return "does not close"
	}
}

func dB(value core.DB) string {
	return fmt.Sprintf("%.2f dB", float64(value))
}

func dBm(value float64) string {
	return fmt.Sprintf("%.2f dBm", value)
}

func txPower(p core.Power) string {
	if p.Unit == units.DBm {
		return p.String()
	}
	return fmt.Sprintf("%v (%s)", p, dBm(p.DBm))
}

func length(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.3g m", meters)
	}
	return units.FormatMetricPrefixed(meters) + "m"
}
