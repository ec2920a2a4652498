package shotloader

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// patchChecksum folds the negated 16-bit sum of the first size bytes into
// the checksum field at pos, so the region sums to zero like Igor writes it.
func patchChecksum(raw []byte, order binary.ByteOrder, pos int, size int) {
	var sum uint16
	for i := 0; i+1 < size; i += 2 {
		sum += order.Uint16(raw[i : i+2])
	}
	order.PutUint16(raw[pos:pos+2], -sum)
}

func packWave5(t *testing.T, order binary.ByteOrder, bin binHeader5, wave waveHeader5, payload []byte) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, binary.Write(buf, order, bin))
	require.NoError(t, binary.Write(buf, order, wave))
	require.Equal(t, 384, buf.Len())
	buf.Write(payload)

	raw := buf.Bytes()
	patchChecksum(raw, order, 2, 384)
	return raw
}

func buildWave5(t *testing.T, order binary.ByteOrder, waveType int16, npnts int32, deltaX float64, payload []byte) []byte {
	t.Helper()
	bin := binHeader5{Version: 5}
	wave := waveHeader5{Npnts: npnts, Type: waveType}
	copy(wave.Bname[:], "testwave")
	wave.NDim[0] = npnts
	wave.SfA[0] = deltaX
	return packWave5(t, order, bin, wave, payload)
}

func buildWave2(t *testing.T, order binary.ByteOrder, waveType int16, npnts int32, deltaX float64, payload []byte) []byte {
	t.Helper()
	bin := binHeader2{Version: 2}
	wave := waveHeader2{Type: waveType, Npnts: npnts, HsA: deltaX}
	copy(wave.Bname[:], "testwave")

	buf := new(bytes.Buffer)
	require.NoError(t, binary.Write(buf, order, bin))
	require.NoError(t, binary.Write(buf, order, wave))
	require.Equal(t, 126, buf.Len())
	buf.Write(payload)

	raw := buf.Bytes()
	patchChecksum(raw, order, 14, 126)
	return raw
}

func packSamples(t *testing.T, order binary.ByteOrder, samples interface{}) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, binary.Write(buf, order, samples))
	return buf.Bytes()
}

func writeWaveFile(t *testing.T, dir, signame string, raw []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, signame+".ibw"), raw, 0o644))
}

func TestLoadWave5Float32(t *testing.T) {
	dir := t.TempDir()
	payload := packSamples(t, binary.LittleEndian, []float32{1.5, -2.25, 3})
	raw := buildWave5(t, binary.LittleEndian, igorFP32, 3, 1e-6, payload)
	writeWaveFile(t, dir, "CFL01", raw)

	sig, err := IgorLoader{}.Load("CFL01", dir)
	require.NoError(t, err)

	assert.Equal(t, 1e-6, sig.DeltaX)
	assert.Equal(t, []float64{1.5, -2.25, 3}, sig.Data)
}

func TestLoadWave5Float64BigEndian(t *testing.T) {
	dir := t.TempDir()
	payload := packSamples(t, binary.BigEndian, []float64{0.5, 0.25})
	raw := buildWave5(t, binary.BigEndian, igorFP64, 2, 2e-6, payload)
	writeWaveFile(t, dir, "PDX01", raw)

	sig, err := IgorLoader{}.Load("PDX01", dir)
	require.NoError(t, err)

	assert.Equal(t, 2e-6, sig.DeltaX)
	assert.Equal(t, []float64{0.5, 0.25}, sig.Data)
}

func TestLoadWave2Int16(t *testing.T) {
	dir := t.TempDir()
	payload := packSamples(t, binary.LittleEndian, []int16{-3, 7})
	raw := buildWave2(t, binary.LittleEndian, igorI16, 2, 0.001, payload)
	writeWaveFile(t, dir, "PlasmaRogB", raw)

	sig, err := IgorLoader{}.Load("PlasmaRogB", dir)
	require.NoError(t, err)

	assert.Equal(t, 0.001, sig.DeltaX)
	assert.Equal(t, []float64{-3, 7}, sig.Data)
}

// A wave saved with zero points is valid and loads as the empty sentinel.
func TestLoadWave5EmptyWave(t *testing.T) {
	dir := t.TempDir()
	raw := buildWave5(t, binary.LittleEndian, igorFP32, 0, 0, nil)
	writeWaveFile(t, dir, "CFL02", raw)

	sig, err := IgorLoader{}.Load("CFL02", dir)
	require.NoError(t, err)

	assert.True(t, sig.Empty())
}

// Channels come and go between shots; a missing file is the empty
// sentinel, not an error.
func TestLoadMissingFile(t *testing.T) {
	sig, err := IgorLoader{}.Load("absent", t.TempDir())

	require.NoError(t, err)
	assert.True(t, sig.Empty())
}

func TestLoadCorruptWave(t *testing.T) {
	dir := t.TempDir()
	payload := packSamples(t, binary.LittleEndian, []float32{1, 2})
	raw := buildWave5(t, binary.LittleEndian, igorFP32, 2, 1e-6, payload)
	raw[100] ^= 0xFF
	writeWaveFile(t, dir, "CFL03", raw)

	_, err := IgorLoader{}.Load("CFL03", dir)

	var badWave *ErrBadWave
	require.ErrorAs(t, err, &badWave)
}

func TestLoadUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	raw := make([]byte, 400)
	binary.LittleEndian.PutUint16(raw[0:2], 3)
	writeWaveFile(t, dir, "CFL04", raw)

	_, err := IgorLoader{}.Load("CFL04", dir)

	var badWave *ErrBadWave
	require.ErrorAs(t, err, &badWave)
}

func TestReadWave5UnsignedInt32(t *testing.T) {
	payload := packSamples(t, binary.LittleEndian, []uint32{1, 4000000000})
	raw := buildWave5(t, binary.LittleEndian, igorI32|igorUnsigned, 2, 1e-6, payload)

	sig, err := readWave(raw)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 4000000000}, sig.Data)
}

func TestReadWave5SignedInt8(t *testing.T) {
	payload := packSamples(t, binary.LittleEndian, []int8{-5, 100})
	raw := buildWave5(t, binary.LittleEndian, igorI8, 2, 1e-6, payload)

	sig, err := readWave(raw)
	require.NoError(t, err)

	assert.Equal(t, []float64{-5, 100}, sig.Data)
}

func TestReadWave5RejectsComplex(t *testing.T) {
	payload := packSamples(t, binary.LittleEndian, []float32{1, 2, 3, 4})
	raw := buildWave5(t, binary.LittleEndian, igorFP32|igorCmplx, 2, 1e-6, payload)

	_, err := readWave(raw)
	require.ErrorContains(t, err, "complex")
}

func TestReadWave5RejectsText(t *testing.T) {
	raw := buildWave5(t, binary.LittleEndian, 0, 2, 1e-6, []byte{0, 0, 0, 0})

	_, err := readWave(raw)
	require.ErrorContains(t, err, "text")
}

func TestReadWave5RejectsMultiDim(t *testing.T) {
	bin := binHeader5{Version: 5}
	wave := waveHeader5{Npnts: 4, Type: igorFP32}
	wave.NDim[0], wave.NDim[1] = 2, 2
	wave.SfA[0] = 1e-6
	payload := packSamples(t, binary.LittleEndian, []float32{1, 2, 3, 4})
	raw := packWave5(t, binary.LittleEndian, bin, wave, payload)

	_, err := readWave(raw)
	require.ErrorContains(t, err, "multi-dimensional")
}

func TestReadWave2TruncatedData(t *testing.T) {
	payload := packSamples(t, binary.LittleEndian, []float32{1, 2})
	raw := buildWave2(t, binary.LittleEndian, igorFP32, 4, 1e-6, payload)

	_, err := readWave(raw)
	require.ErrorContains(t, err, "truncated")
}

// A checksum-valid header can still claim far more points than the file
// holds; the claim is bounded against the payload before anything is
// allocated for it.
func TestReadWave5OversizedPointCount(t *testing.T) {
	bin := binHeader5{Version: 5}
	wave := waveHeader5{Npnts: 1 << 30, Type: igorFP32}
	wave.NDim[0] = wave.Npnts
	wave.SfA[0] = 1e-6
	raw := packWave5(t, binary.LittleEndian, bin, wave, make([]byte, 16))

	_, err := readWave(raw)
	require.ErrorContains(t, err, "truncated")
}

func TestReadWaveTooShort(t *testing.T) {
	_, err := readWave([]byte{2})
	require.Error(t, err)
}
