package shotloader

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// Igor numeric wave types (IgorBin.h).
const (
	igorCmplx    = 1
	igorFP32     = 2
	igorFP64     = 4
	igorI8       = 8
	igorI16      = 0x10
	igorI32      = 0x20
	igorUnsigned = 0x40
)

// Wave headers are written packed on disk, so sizes come from binary.Size,
// not unsafe.Sizeof.
type binHeader2 struct {
	Version  int16
	WfmSize  int32
	NoteSize int32
	PictSize int32
	Checksum int16
}

type waveHeader2 struct {
	Type         int16
	Next         uint32
	Bname        [20]byte
	WhVersion    int16
	SrcFldr      int16
	FileName     uint32
	DataUnits    [4]byte
	XUnits       [4]byte
	Npnts        int32
	AModified    int16
	HsA          float64
	HsB          float64
	WModified    int16
	SwModified   int16
	FsValid      int16
	TopFullScale float64
	BotFullScale float64
	UseBits      byte
	KindBits     byte
	Formula      uint32
	DepID        int32
	CreationDate uint32
	WUnused      [2]byte
	ModDate      uint32
	WaveNoteH    uint32
}

type binHeader5 struct {
	Version        int16
	Checksum       int16
	WfmSize        int32
	FormulaSize    int32
	NoteSize       int32
	DataEUnitsSize int32
	DimEUnitsSize  [4]int32
	DimLabelsSize  [4]int32
	SIndicesSize   int32
	OptionsSize1   int32
	OptionsSize2   int32
}

type waveHeader5 struct {
	Next         uint32
	CreationDate uint32
	ModDate      uint32
	Npnts        int32
	Type         int16
	DLock        int16
	Whpad1       [6]byte
	WhVersion    int16
	Bname        [32]byte
	Whpad2       int32
	DFolder      uint32
	NDim         [4]int32
	SfA          [4]float64
	SfB          [4]float64
	DataUnits    [4]byte
	DimUnits     [4][4]byte
	FsValid      int16
	Whpad3       int16
	TopFullScale float64
	BotFullScale float64
	DataEUnits   uint32
	DimEUnits    [4]uint32
	DimLabels    [4]uint32
	WaveNoteH    uint32
	WhUnused     [16]int32
	AModified    int16
	WModified    int16
	SwModified   int16
	UseBits      byte
	KindBits     byte
	Formula      uint32
	DepID        int32
	Whpad4       int16
	SrcFldr      int16
	FileName     uint32
	SIndices     uint32
}

// IgorLoader reads Igor Pro binary waves from the shot folder.
type IgorLoader struct {
}

// Load reads <signame>.ibw from pathname. A missing file is not an error:
// digitizer channels come and go between shots, so the caller gets the
// empty sentinel and processing continues.
func (l IgorLoader) Load(signame string, pathname string) (RawSignal, error) {
	filename := signame + ".ibw"
	raw, err := os.ReadFile(filepath.Join(pathname, filename))
	if err != nil {
		if os.IsNotExist(err) {
			message := fmt.Sprintf("%s not loaded - file not found", filename)
			logger.Info(message, "igor")
			return RawSignal{}, nil
		}
		return RawSignal{}, &ErrOpenFile{Filename: filename, Err: err}
	}

	signal, err := readWave(raw)
	if err != nil {
		return RawSignal{}, &ErrBadWave{Filename: filename, Err: err}
	}
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("%s loaded  deltaX = %v", filename, signal.DeltaX)
		logger.Info(message, "igor")
	}
	return signal, nil
}

func readWave(raw []byte) (RawSignal, error) {
	version, order, err := waveByteOrder(raw)
	if err != nil {
		return RawSignal{}, err
	}
	switch version {
	case 2:
		return readWave2(raw, order)
	case 5:
		return readWave5(raw, order)
	}
	return RawSignal{}, fmt.Errorf("unsupported wave version %d", version)
}

// waveByteOrder sniffs the byte order from the version field, which is the
// first short of the file in every header version.
func waveByteOrder(raw []byte) (int, binary.ByteOrder, error) {
	if len(raw) < 2 {
		return 0, nil, fmt.Errorf("file too short for a wave header (%d bytes)", len(raw))
	}
	version := int16(binary.LittleEndian.Uint16(raw[0:2]))
	if version == 2 || version == 5 {
		return int(version), binary.LittleEndian, nil
	}
	version = int16(binary.BigEndian.Uint16(raw[0:2]))
	if version == 2 || version == 5 {
		return int(version), binary.BigEndian, nil
	}
	return 0, nil, fmt.Errorf("unsupported wave version %d", version)
}

func readWave2(raw []byte, order binary.ByteOrder) (RawSignal, error) {
	var bin binHeader2
	var wave waveHeader2
	headerSize := binary.Size(bin) + binary.Size(wave)
	if len(raw) < headerSize {
		return RawSignal{}, fmt.Errorf("truncated version 2 header (%d bytes)", len(raw))
	}
	if err := verifyChecksum(raw[:headerSize], order); err != nil {
		return RawSignal{}, err
	}
	reader := bytes.NewReader(raw)
	binary.Read(reader, order, &bin)
	binary.Read(reader, order, &wave)

	deltaX := wave.HsA
	if wave.Npnts > 0 && deltaX <= 0 {
		return RawSignal{}, fmt.Errorf("invalid sample spacing %v", deltaX)
	}
	data, err := readWaveData(raw[headerSize:], order, wave.Type, wave.Npnts)
	if err != nil {
		return RawSignal{}, err
	}
	return RawSignal{DeltaX: deltaX, Data: data}, nil
}

func readWave5(raw []byte, order binary.ByteOrder) (RawSignal, error) {
	var bin binHeader5
	var wave waveHeader5
	headerSize := binary.Size(bin) + binary.Size(wave)
	if len(raw) < headerSize {
		return RawSignal{}, fmt.Errorf("truncated version 5 header (%d bytes)", len(raw))
	}
	if err := verifyChecksum(raw[:headerSize], order); err != nil {
		return RawSignal{}, err
	}
	reader := bytes.NewReader(raw)
	binary.Read(reader, order, &bin)
	binary.Read(reader, order, &wave)

	if wave.NDim[1] != 0 {
		return RawSignal{}, fmt.Errorf("multi-dimensional waves are not supported")
	}
	deltaX := wave.SfA[0]
	if wave.Npnts > 0 && deltaX <= 0 {
		return RawSignal{}, fmt.Errorf("invalid sample spacing %v", deltaX)
	}
	data, err := readWaveData(raw[headerSize:], order, wave.Type, wave.Npnts)
	if err != nil {
		return RawSignal{}, err
	}
	return RawSignal{DeltaX: deltaX, Data: data}, nil
}

// verifyChecksum sums the header bytes as 16-bit words. The writer stores
// the negated sum of everything else in the checksum field, so a clean
// header sums to zero.
func verifyChecksum(header []byte, order binary.ByteOrder) error {
	var sum uint16
	for i := 0; i+1 < len(header); i += 2 {
		sum += order.Uint16(header[i : i+2])
	}
	if sum != 0 {
		return fmt.Errorf("header checksum mismatch (%d)", int16(sum))
	}
	return nil
}

func readWaveData(data []byte, order binary.ByteOrder, waveType int16, npnts int32) ([]float64, error) {
	if npnts < 0 {
		return nil, fmt.Errorf("negative point count %d", npnts)
	}
	if npnts == 0 {
		return nil, nil
	}
	if waveType&igorCmplx != 0 {
		return nil, fmt.Errorf("complex waves are not supported")
	}
	if waveType == 0 {
		return nil, fmt.Errorf("text waves are not supported")
	}

	var sampleSize int
	switch waveType &^ igorUnsigned {
	case igorI8:
		sampleSize = 1
	case igorI16:
		sampleSize = 2
	case igorFP32, igorI32:
		sampleSize = 4
	case igorFP64:
		sampleSize = 8
	default:
		return nil, fmt.Errorf("unsupported wave type %#x", waveType)
	}

	// npnts comes from the file; bound it before allocating.
	n := int(npnts)
	needed := n * sampleSize
	if len(data) < needed {
		return nil, fmt.Errorf("truncated wave data (%d of %d bytes)", len(data), needed)
	}

	values := make([]float64, n)
	unsigned := waveType&igorUnsigned != 0

	read := func(dst interface{}) error {
		return binary.Read(bytes.NewReader(data[:needed]), order, dst)
	}

	switch waveType &^ igorUnsigned {
	case igorFP32:
		samples := make([]float32, n)
		if err := read(&samples); err != nil {
			return nil, err
		}
		for i, v := range samples {
			values[i] = float64(v)
		}
	case igorFP64:
		if err := read(&values); err != nil {
			return nil, err
		}
	case igorI8:
		if unsigned {
			samples := make([]uint8, n)
			if err := read(&samples); err != nil {
				return nil, err
			}
			for i, v := range samples {
				values[i] = float64(v)
			}
		} else {
			samples := make([]int8, n)
			if err := read(&samples); err != nil {
				return nil, err
			}
			for i, v := range samples {
				values[i] = float64(v)
			}
		}
	case igorI16:
		if unsigned {
			samples := make([]uint16, n)
			if err := read(&samples); err != nil {
				return nil, err
			}
			for i, v := range samples {
				values[i] = float64(v)
			}
		} else {
			samples := make([]int16, n)
			if err := read(&samples); err != nil {
				return nil, err
			}
			for i, v := range samples {
				values[i] = float64(v)
			}
		}
	case igorI32:
		if unsigned {
			samples := make([]uint32, n)
			if err := read(&samples); err != nil {
				return nil, err
			}
			for i, v := range samples {
				values[i] = float64(v)
			}
		} else {
			samples := make([]int32, n)
			if err := read(&samples); err != nil {
				return nil, err
			}
			for i, v := range samples {
				values[i] = float64(v)
			}
		}
	}
	return values, nil
}
