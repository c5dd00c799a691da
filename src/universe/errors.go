package universe

import (
	"errors"
	"fmt"
)

//ErrClosed is returned by the commands sent to the closed universe
var ErrClosed = errors.New("universe is closed")

//ConfigurationError is returned when the grid or the run is configured with invalid values
//the run must not start with such configuration
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

//BoundsError is returned on access to a cell outside the allocated grid
//Interior is set when the write targets the border ring, which is permanently dead
type BoundsError struct {
	Row      int
	Col      int
	Rows     int
	Cols     int
	Interior bool
}

func (e *BoundsError) Error() string {
	if e.Interior {
		return fmt.Sprintf("cell (%d,%d) is outside of the interior of the %dx%d grid", e.Row, e.Col, e.Rows, e.Cols)
	}
	return fmt.Sprintf("cell (%d,%d) is outside of the %dx%d grid", e.Row, e.Col, e.Rows, e.Cols)
}

//ExportError is returned when the frame sink could not persist a frame
type ExportError struct {
	Frame int
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export frame %d: %v", e.Frame, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
