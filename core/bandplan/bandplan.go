package bandplan

import "github.com/ftl/linkbudget/core"

// Band represents a frequency band.
type Band struct {
	core.FrequencyRange
	Name BandName
}

// Contains indicates if the band contains the given frequency.
func (b Band) Contains(f core.Frequency) bool {
	return f >= b.From && f <= b.To
}

// UnknownBand is the unknown band that contains no frequency.
var UnknownBand = Band{Name: BandUnknown}

// BandName is the name of a frequency band.
type BandName string

// All amateur radio bands.
const (
	BandUnknown BandName = "Unknown"
	Band160m    BandName = "160m"
	Band80m     BandName = "80m"
	Band60m     BandName = "60m"
	Band40m     BandName = "40m"
	Band30m     BandName = "30m"
	Band20m     BandName = "20m"
	Band17m     BandName = "17m"
	Band15m     BandName = "15m"
	Band12m     BandName = "12m"
	Band10m     BandName = "10m"
	Band6m      BandName = "6m"
	Band4m      BandName = "4m"
	Band2m      BandName = "2m"
	Band70cm    BandName = "70cm"
	Band23cm    BandName = "23cm"
	Band13cm    BandName = "13cm"
	Band9cm     BandName = "9cm"
	Band6cm     BandName = "6cm"
	Band3cm     BandName = "3cm"
)

// All license free ISM and SRD bands.
const (
	BandISM433  BandName = "ISM 433MHz"
	BandSRD868  BandName = "SRD 868MHz"
	BandISM915  BandName = "ISM 915MHz"
	BandISM2400 BandName = "ISM 2.4GHz"
	BandISM5800 BandName = "ISM 5.8GHz"
)

// Bandplan type. If bands overlap, the first matching band wins.
type Bandplan []Band

// ByFrequency returns the band for the matching frequency.
func (p Bandplan) ByFrequency(f core.Frequency) Band {
	for _, b := range p {
		if b.Contains(f) {
			return b
		}
	}
	return UnknownBand
}

// ByName returns the band with the given name.
func (p Bandplan) ByName(name BandName) (Band, bool) {
	for _, b := range p {
		if b.Name == name {
			return b, true
		}
	}
	return UnknownBand, false
}

func band(name BandName, from, to core.Frequency) Band {
	return Band{Name: name, FrequencyRange: core.FrequencyRange{From: from, To: to}}
}

// IARURegion1 is the bandplan for IARU Region 1
var IARURegion1 = Bandplan{
	band(Band160m, 1810000, 2000000),
	band(Band80m, 3500000, 3800000),
	band(Band60m, 5351500, 5366500),
	band(Band40m, 7000000, 7200000),
	band(Band30m, 10100000, 10150000),
	band(Band20m, 14000000, 14350000),
	band(Band17m, 18068000, 18168000),
	band(Band15m, 21000000, 21450000),
	band(Band12m, 24890000, 24990000),
	band(Band10m, 28000000, 29700000),
	band(Band6m, 50000000, 52000000),
	band(Band4m, 70000000, 70500000),
	band(Band2m, 144000000, 146000000),
	band(Band70cm, 430000000, 440000000),
	band(Band23cm, 1240000000, 1300000000),
	band(Band13cm, 2300000000, 2450000000),
	band(Band9cm, 3400000000, 3475000000),
	band(Band6cm, 5650000000, 5850000000),
	band(Band3cm, 10000000000, 10500000000),
}

// ISM contains the license free bands commonly used for data links in Region 1 and the US.
var ISM = Bandplan{
	band(BandISM433, 433050000, 434790000),
	band(BandSRD868, 863000000, 870000000),
	band(BandISM915, 902000000, 928000000),
	band(BandISM2400, 2400000000, 2483500000),
	band(BandISM5800, 5725000000, 5875000000),
}

// Default bandplan: IARU Region 1 amateur bands first, then the ISM bands.
var Default = append(append(Bandplan{}, IARURegion1...), ISM...)
