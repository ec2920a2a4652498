package shotloader

import (
	"errors"
	"fmt"
	"sort"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	"golang.org/x/exp/maps"
)

// Writer lays the calibrated shot out as one HDF5 file: a Run group with
// the shot number, and per diagnostic group a channels index table plus
// one [2 x npts] dataset per channel that carried data.
type Writer struct {
	File      *hdf5.File
	Filename  string
	RunGroup  *hdf5.Group
	ShotTable *hdf5.Dataset
	groups    map[Group]*hdf5.Group
	datasets  []*hdf5.Dataset
}

func NewWriter(filename string) (*Writer, error) {
	// Set string size for HDF5
	hdf5.SetStringLength(STRLEN)

	writer := &Writer{Filename: filename, groups: make(map[Group]*hdf5.Group)}
	file, err := openFile(filename)
	if err != nil {
		return nil, err
	}
	writer.File = file
	writer.RunGroup, err = createGroup(file, "Run")
	if err != nil {
		return nil, err
	}
	writer.ShotTable, err = createTable(writer.RunGroup, "shotInfo", ShotInfoHDF5{})
	if err != nil {
		return nil, err
	}
	for _, group := range []Group{GroupFluxLoops, GroupBDots, GroupCurrents} {
		g, err := createGroup(file, string(group))
		if err != nil {
			return nil, err
		}
		writer.groups[group] = g
	}
	return writer, nil
}

// WriteShot writes the processed dataset. Channels that ended up as empty
// sentinels appear in the index table with npts 0 and get no dataset.
func (w *Writer) WriteShot(shot int, dataset *ShotDataset, cal CalTable) error {
	err := writeEntryToTable(w.ShotTable, ShotInfoHDF5{shot_number: int32(shot)}, 0)
	if err != nil {
		return err
	}
	for _, group := range []Group{GroupFluxLoops, GroupBDots, GroupCurrents} {
		if err := w.writeGroup(group, dataset.ChannelsOf(group), cal); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeGroup(group Group, channels map[string]CalChannel, cal CalTable) error {
	names := maps.Keys(channels)
	sort.Strings(names)

	// The array MUST be allocated at creation, if not, HDF5 will panic
	// doing appends will not work
	entries := make([]ChannelInfoHDF5, len(names))
	for i, name := range names {
		channel := channels[name]
		// Ip is derived from the plasma Rogowski coil, so its calibration
		// entry lives under the source channel name.
		calName := name
		if name == IpChannel {
			calName = IpSourceChannel
		}
		entry := ChannelInfoHDF5{
			channel: convertToHdf5String(name),
			npts:    int32(len(channel.Data)),
		}
		if calEntry, ok := cal[calName]; ok {
			entry.factor = calEntry.Factor
			entry.unit = convertToHdf5String(calEntry.Unit)
		}
		entries[i] = entry

		if channel.Empty() {
			continue
		}
		if err := w.writeChannel(group, name, channel); err != nil {
			return err
		}
	}

	table, err := createTable(w.groups[group], "channels", ChannelInfoHDF5{})
	if err != nil {
		return err
	}
	w.datasets = append(w.datasets, table)
	if len(entries) == 0 {
		return nil
	}
	return writeArrayToTable(table, &entries, 0)
}

func (w *Writer) writeChannel(group Group, name string, channel CalChannel) error {
	nSamples := len(channel.Data)
	dataset, err := createSignalArray(w.groups[group], name, nSamples)
	if err != nil {
		return err
	}
	w.datasets = append(w.datasets, dataset)
	if err := writeSignalRow(dataset, &channel.Time, 0, nSamples); err != nil {
		return err
	}
	return writeSignalRow(dataset, &channel.Data, 1, nSamples)
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Closing output file %s", w.Filename)
		logger.Info(message, "writer")
	}
	var errs []error
	errs = append(errs, w.ShotTable.Close())
	for _, dataset := range w.datasets {
		errs = append(errs, dataset.Close())
	}
	for _, group := range w.groups {
		errs = append(errs, group.Close())
	}
	errs = append(errs, w.RunGroup.Close(), w.File.Close())
	return errors.Join(errs...)
}
