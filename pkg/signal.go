package shotloader

// RawSignal is one digitizer record as stored in the archive: the uniform
// sample spacing in seconds plus the samples. The zero value is the sentinel
// for a channel whose file was not found.
type RawSignal struct {
	DeltaX float64
	Data   []float64
}

// Empty reports whether the record is the missing-channel sentinel.
func (s RawSignal) Empty() bool {
	return len(s.Data) == 0
}

// CleanSignal is a conditioned record on its reconstructed time base.
type CleanSignal struct {
	Time  []float64
	Value []float64
}

// CalChannel is one fully calibrated channel. The zero value marks a channel
// that could not be processed.
type CalChannel struct {
	Time []float64
	Data []float64
}

func (c CalChannel) Empty() bool {
	return len(c.Data) == 0
}

// ShotDataset is the calibrated output of one shot, one channel map per
// diagnostic group.
type ShotDataset struct {
	FluxLoops map[string]CalChannel
	BDots     map[string]CalChannel
	Currents  map[string]CalChannel
}

func NewShotDataset() ShotDataset {
	return ShotDataset{
		FluxLoops: make(map[string]CalChannel),
		BDots:     make(map[string]CalChannel),
		Currents:  make(map[string]CalChannel),
	}
}

// ChannelsOf returns the channel map for a group.
func (d *ShotDataset) ChannelsOf(group Group) map[string]CalChannel {
	switch group {
	case GroupFluxLoops:
		return d.FluxLoops
	case GroupBDots:
		return d.BDots
	case GroupCurrents:
		return d.Currents
	default:
		return nil
	}
}
