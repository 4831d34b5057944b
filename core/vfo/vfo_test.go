package vfo

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/linkbudget/core"
)

func TestParseFrequency(t *testing.T) {
	actual, err := parseFrequency(" 14074000.000000\n")
	require.NoError(t, err)
	assert.Equal(t, core.Frequency(14074000), actual)

	for _, s := range []string{"", "RPRT -1", "0", "-7074000", "+Inf"} {
		t.Run(s, func(t *testing.T) {
			_, err := parseFrequency(s)
			assert.Error(t, err)
		})
	}
}

func TestFrequencyChangesBelowResolutionAreIgnored(t *testing.T) {
	r := newFollower(DefaultResolution)
	var notified []core.Frequency
	r.OnFrequencyChange(func(f core.Frequency) {
		notified = append(notified, f)
	})

	r.setFrequency(7074000)
	r.setFrequency(7074500)
	r.setFrequency(7073100)
	r.setFrequency(14074000)

	assert.Equal(t, []core.Frequency{7074000, 14074000}, notified)
	assert.Equal(t, core.Frequency(14074000), r.Frequency())
}

func TestNewFollowerWithoutResolutionReportsEveryHertz(t *testing.T) {
	r := newFollower(0)
	var notified []core.Frequency
	r.OnFrequencyChange(func(f core.Frequency) {
		notified = append(notified, f)
	})

	r.setFrequency(7074000)
	r.setFrequency(7074000.5)
	r.setFrequency(7074001)

	assert.Equal(t, []core.Frequency{7074000, 7074001}, notified)
}

func TestHandleFrequencyResponse(t *testing.T) {
	r := newFollower(DefaultResolution)
	var notified []core.Frequency
	r.OnFrequencyChange(func(f core.Frequency) {
		notified = append(notified, f)
	})

	require.NoError(t, r.handleFrequency([]string{"144300000"}))
	assert.Error(t, r.handleFrequency(nil))
	assert.Error(t, r.handleFrequency([]string{"RPRT -11"}))
	require.NoError(t, r.handleFrequency([]string{"432100000", "ignored"}))

	assert.Equal(t, []core.Frequency{144300000, 432100000}, notified)
	assert.Equal(t, core.Frequency(432100000), r.Frequency())
}

func TestOpenWithoutRig(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	_, err = Open(address, DefaultResolution)
	assert.Error(t, err)
}
