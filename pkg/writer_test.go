package shotloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToHdf5String(t *testing.T) {
	got := convertToHdf5String("CFL01")
	assert.Equal(t, "CFL01", string(got[:5]))
	assert.Equal(t, make([]byte, STRLEN-5), got[5:])

	long := convertToHdf5String("PlasmaRogowskiCoilChannelA")
	assert.Equal(t, "PlasmaRogowskiCoilCh", string(long[:]))
}

func TestWriterRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "T109756_mag.h5")

	writer, err := NewWriter(filename)
	require.NoError(t, err)

	dataset := NewShotDataset()
	dataset.Currents[IpChannel] = CalChannel{
		Time: []float64{0, 1e-6, 2e-6},
		Data: []float64{0, 21, 42},
	}
	dataset.FluxLoops["CFL01"] = CalChannel{}
	cal := CalTable{IpSourceChannel: {Factor: 1.5, Unit: "V"}}

	require.NoError(t, writer.WriteShot(109756, &dataset, cal))
	require.NoError(t, writer.Close())

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
