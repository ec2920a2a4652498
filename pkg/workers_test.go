package shotloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// populatedShot builds a shot with raw data and calibration entries for
// every declared channel.
func populatedShot(t *testing.T) *ShotData {
	t.Helper()
	s := NewShotData(42)
	s.CalFile = CalTable{IpSourceChannel: {Factor: 2, Unit: "A"}}
	for _, sig := range FluxLoopChannels {
		s.CalFile[sig] = CalEntry{Factor: 1.5, Unit: "V"}
	}
	for _, sig := range BDotChannels {
		s.CalFile[sig] = CalEntry{Factor: 0.5, Unit: "T"}
	}

	i := 0
	for _, group := range []Group{GroupFluxLoops, GroupBDots} {
		for _, sig := range s.Sigs[group] {
			s.Raw[group][sig] = rampSignal(float64(i), 0.25, 32, 1e-4)
			i++
		}
	}
	s.Raw[GroupCurrents][IpSourceChannel] = rampSignal(-1, 0.5, 32, 1e-4)
	return s
}

func TestProcParallelMatchesSerial(t *testing.T) {
	serial := populatedShot(t)
	serial.CalcIp()
	serial.ProcFL()
	serial.ProcBdot()

	parallel := populatedShot(t)
	parallel.ProcParallel(4)

	require.Equal(t, serial.CalData, parallel.CalData)
}

// A worker count of zero or less still processes every channel instead of
// leaving the consume loop waiting on an empty pool.
func TestProcParallelClampsWorkerCount(t *testing.T) {
	serial := populatedShot(t)
	serial.CalcIp()
	serial.ProcFL()
	serial.ProcBdot()

	parallel := populatedShot(t)
	parallel.ProcParallel(0)

	require.Equal(t, serial.CalData, parallel.CalData)
}

func TestProcParallelRecoversFromPanic(t *testing.T) {
	s := populatedShot(t)
	s.Factors = nil // every B-dot lookup panics on the nil table

	s.ProcParallel(3)

	// Every B-dot channel fails to the sentinel; the pool still drains
	// every job and the other groups are unaffected.
	assert.Len(t, s.CalData.BDots, len(BDotChannels))
	for _, sig := range BDotChannels {
		assert.True(t, s.CalData.BDots[sig].Empty(), sig)
	}
	assert.False(t, s.CalData.Currents[IpChannel].Empty())
	assert.False(t, s.CalData.FluxLoops["CFL01"].Empty())
}
