package shotloader

import "fmt"

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrCalParse represents a structural violation in a calibration config.
type ErrCalParse struct {
	Filename string
	Line     int
	Reason   string
}

func (e *ErrCalParse) Error() string {
	return fmt.Sprintf("calibration file %q malformed at line %d: %s", e.Filename, e.Line, e.Reason)
}

// ErrInsufficientData means a raw record cannot be conditioned.
type ErrInsufficientData struct {
	Reason string
}

func (e *ErrInsufficientData) Error() string {
	return fmt.Sprintf("insufficient data: %s", e.Reason)
}

// ErrMissingCalibration means a channel has no entry in the calibration config.
type ErrMissingCalibration struct {
	Channel string
}

func (e *ErrMissingCalibration) Error() string {
	return fmt.Sprintf("no calibration entry for channel %q", e.Channel)
}

// ErrFactorNotFound means a declared field-coil channel is missing from the
// geometric-factor table.
type ErrFactorNotFound struct {
	Channel string
}

func (e *ErrFactorNotFound) Error() string {
	return fmt.Sprintf("no geometric factor for channel %q", e.Channel)
}

// ErrBadWave represents a corrupt or unsupported Igor binary wave file.
type ErrBadWave struct {
	Filename string
	Err      error
}

func (e *ErrBadWave) Error() string {
	return fmt.Sprintf("bad wave file %q: %v", e.Filename, e.Err)
}

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}
