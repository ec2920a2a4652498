package shotloader

import (
	"errors"
	"fmt"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
)

// WaveLoader reads one named raw signal from a shot folder.
type WaveLoader interface {
	Load(signame string, pathname string) (RawSignal, error)
}

// ShotData carries one shot through the pipeline: raw waves in, calibrated
// channels out.
type ShotData struct {
	Shot     int
	DataPath string
	Sigs     map[Group][]string
	Raw      map[Group]map[string]RawSignal
	CalFile  CalTable
	Factors  *FactorTable
	CalData  ShotDataset
	Loader   WaveLoader
}

func NewShotData(shot int) *ShotData {
	return &ShotData{
		Shot: shot,
		Sigs: map[Group][]string{
			GroupFluxLoops: FluxLoopChannels,
			GroupBDots:     BDotChannels,
			GroupCurrents:  CurrentChannels,
		},
		Raw: map[Group]map[string]RawSignal{
			GroupFluxLoops: {},
			GroupBDots:     {},
			GroupCurrents:  {},
		},
		Factors: DefaultFactorTable(),
		CalData: NewShotDataset(),
		Loader:  IgorLoader{},
	}
}

// GetFolderPath resolves the archive folder for the shot number.
func (s *ShotData) GetFolderPath() error {
	pathname, err := FolderPath(s.Shot)
	if err != nil {
		return err
	}
	s.DataPath = pathname
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Shot folder: %s", pathname)
		logger.Info(message, "shotData")
	}
	return nil
}

// LoadRaw reads every declared channel of the enabled groups. Missing
// files come back as empty sentinels from the loader; any other read
// failure aborts the shot.
func (s *ShotData) LoadRaw() error {
	for _, group := range s.enabledGroups() {
		for _, sig := range s.Sigs[group] {
			raw, err := s.Loader.Load(sig, s.DataPath)
			if err != nil {
				return fmt.Errorf("loading %s/%s: %w", group, sig, err)
			}
			s.Raw[group][sig] = raw
		}
	}
	return nil
}

// LoadCalData parses the digitizer calibration file from the shot folder.
func (s *ShotData) LoadCalData() error {
	table, err := LoadCalFile(filepath.Join(s.DataPath, CalFileName))
	if err != nil {
		return err
	}
	s.CalFile = table
	return nil
}

func (s *ShotData) enabledGroups() []Group {
	groups := make([]Group, 0, 3)
	if configuration.ReadFluxLoops {
		groups = append(groups, GroupFluxLoops)
	}
	if configuration.ReadBDots {
		groups = append(groups, GroupBDots)
	}
	if configuration.ReadCurrents {
		groups = append(groups, GroupCurrents)
	}
	return groups
}

// processChannel conditions one raw signal and applies its calibration.
// Flux loops and currents scale by the DAS factor alone; B-dot coils also
// multiply by the geometric factor 1/NA.
func (s *ShotData) processChannel(policy Policy, sig string, raw RawSignal) (CalChannel, error) {
	clean, err := CleanUp(raw, true)
	if err != nil {
		return CalChannel{}, fmt.Errorf("conditioning %s: %w", sig, err)
	}
	entry, ok := s.CalFile[sig]
	if !ok {
		return CalChannel{}, &ErrMissingCalibration{Channel: sig}
	}
	factor := entry.Factor
	switch policy {
	case PolicyFluxLoop, PolicyCurrent:
		// DAS scale only
	case PolicyBDot:
		na, err := s.Factors.Lookup(sig)
		if err != nil {
			return CalChannel{}, err
		}
		factor *= na
	default:
		return CalChannel{}, fmt.Errorf("unknown policy %v for %s", policy, sig)
	}
	floats.Scale(factor, clean.Value)
	return CalChannel{Time: clean.Time, Data: clean.Value}, nil
}

// storeChannel records a processing result. Failures never abort the
// group: the channel gets the empty sentinel and siblings continue. A
// missing geometric factor is a calibration bug and is logged loudly.
func (s *ShotData) storeChannel(group Group, name string, cal CalChannel, err error) {
	if err != nil {
		var notFound *ErrFactorNotFound
		if errors.As(err, &notFound) {
			logger.Error(err.Error())
		} else {
			message := fmt.Sprintf("no data for %s", name)
			logger.Info(message, groupModule(group))
		}
		s.CalData.ChannelsOf(group)[name] = CalChannel{}
		return
	}
	s.CalData.ChannelsOf(group)[name] = cal
}

func groupModule(group Group) string {
	switch group {
	case GroupFluxLoops:
		return "fluxLoops"
	case GroupBDots:
		return "bdots"
	case GroupCurrents:
		return "currents"
	}
	return "shotData"
}

// CalcIp derives the plasma current from the calibrated plasma Rogowski
// coil and stores it as channel Ip.
func (s *ShotData) CalcIp() {
	if !configuration.ReadCurrents {
		return
	}
	cal, err := s.processChannel(PolicyCurrent, IpSourceChannel, s.Raw[GroupCurrents][IpSourceChannel])
	s.storeChannel(GroupCurrents, IpChannel, cal, err)
}

// ProcFL conditions and calibrates every flux loop.
func (s *ShotData) ProcFL() {
	if !configuration.ReadFluxLoops {
		return
	}
	for _, sig := range s.Sigs[GroupFluxLoops] {
		cal, err := s.processChannel(PolicyFluxLoop, sig, s.Raw[GroupFluxLoops][sig])
		s.storeChannel(GroupFluxLoops, sig, cal, err)
	}
}

// ProcBdot conditions and calibrates every B-dot coil.
func (s *ShotData) ProcBdot() {
	if !configuration.ReadBDots {
		return
	}
	for _, sig := range s.Sigs[GroupBDots] {
		cal, err := s.processChannel(PolicyBDot, sig, s.Raw[GroupBDots][sig])
		s.storeChannel(GroupBDots, sig, cal, err)
	}
}

// ProcData exports the processed data structure.
func (s *ShotData) ProcData() *ShotDataset {
	return &s.CalData
}
