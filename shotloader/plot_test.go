package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shotloader "github.com/pegasus-iii/shotloader_go/pkg"
)

func TestPlotIpNoData(t *testing.T) {
	dataset := shotloader.NewShotDataset()

	err := plotIp(&dataset, filepath.Join(t.TempDir(), "ip.png"))
	require.ErrorContains(t, err, "no Ip data")
}

func TestPlotIpWritesFile(t *testing.T) {
	dataset := shotloader.NewShotDataset()
	dataset.Currents[shotloader.IpChannel] = shotloader.CalChannel{
		Time: []float64{0, 1e-6, 2e-6, 3e-6},
		Data: []float64{0, 10, 20, 10},
	}

	filename := filepath.Join(t.TempDir(), "ip.png")
	require.NoError(t, plotIp(&dataset, filename))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
