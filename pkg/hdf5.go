package shotloader

import (
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

type ShotInfoHDF5 struct {
	shot_number int32
}

type ChannelInfoHDF5 struct {
	channel [STRLEN]byte
	npts    int32
	factor  float64
	unit    [STRLEN]byte
}

const STRLEN = 20

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

// createSignalArray makes the [2 x nSamples] dataset holding one channel,
// row 0 the time base and row 1 the calibrated samples.
func createSignalArray(group *hdf5.Group, name string, nSamples int) (*hdf5.Dataset, error) {
	dimsArray := []uint{0, 0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDimsArray := []uint{uint(unlimitedDims), uint(nSamples)}
	chunks := []uint{1, 32768}
	if nSamples < 32768 {
		chunks[1] = uint(nSamples)
	}
	return createArray(group, name, dimsArray, maxDimsArray, chunks)
}

func createArray(group *hdf5.Group, name string, dims []uint, maxDims []uint, chunks []uint) (*hdf5.Dataset, error) {
	file_spaceArray, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	// create property list
	plistArray, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	plistArray.SetChunk(chunks)
	// Set compression level
	plistArray.SetDeflate(configuration.CompressionLevel)

	// create the dataset
	dsetArray, err := group.CreateDatasetWith(name, hdf5.T_NATIVE_DOUBLE, file_spaceArray, plistArray)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dsetArray, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	chunks := []uint{32768}
	plist.SetChunk(chunks)
	// Set compression level
	plist.SetDeflate(configuration.CompressionLevel)

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	// create the dataset
	dset, err := group.CreateDatasetWith(name, dtype, file_space, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T, rowCounter int) error {
	array := []T{data}
	return writeArrayToTable(dataset, &array, rowCounter)
}

func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, rowCounter int) error {
	length := uint(len(*data))
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return fmt.Errorf("error creating dataspace: %w", err)
	}

	// extend
	rowsInFile := uint(rowCounter)
	newsize := []uint{rowsInFile + length}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{rowsInFile}
	count := []uint{length}
	filespace.SelectHyperslab(start, nil, count, nil)

	// write data to the dataset
	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		return fmt.Errorf("error writing table row: %w", err)
	}

	dataspace.Close()
	filespace.Close()
	return nil
}

func writeSignalRow(dataset *hdf5.Dataset, data *[]float64, row int, nSamples int) error {
	// extend
	newsize := []uint{uint(row) + 1, uint(nSamples)}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{uint(row), 0}
	count := []uint{1, uint(nSamples)}
	filespace.SelectHyperslab(start, nil, count, nil)

	dataspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		return fmt.Errorf("error creating dataspace: %w", err)
	}

	// write data to the dataset
	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		return fmt.Errorf("error writing signal row: %w", err)
	}

	dataspace.Close()
	filespace.Close()
	return nil
}
