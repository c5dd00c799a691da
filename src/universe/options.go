package universe

import (
	"math"
	"time"
)

//Options represents the Universe's configurable options
type Options struct {
	Rows     int
	Cols     int
	Density  float64       //probability of a cell being alive at the first iteration
	FPS      int           //frames per second of the produced time-lapse
	Duration int           //seconds of the produced time-lapse
	Seed     int64         //random seed for the initial settlement
	Workers  int           //goroutines computing one generation
	Interval time.Duration //pause between the steps while running
}

//default options
const (
	DefRows     = 768
	DefCols     = 1024
	DefDensity  = 0.5
	DefFPS      = 24
	DefDuration = 10

	DefSimulationInterval = time.Millisecond * 100 //interval of the interactive mode
)

var DefaultUniverseOptions = Options{
	Rows:     DefRows,
	Cols:     DefCols,
	Density:  DefDensity,
	FPS:      DefFPS,
	Duration: DefDuration,
	Workers:  DefWorkers,
}

//Frames returns the count of generations exported during the run
func (o Options) Frames() int {
	return o.FPS * o.Duration
}

//Validate checks the options, the run must not start when it fails
func (o Options) Validate() error {
	switch {
	case o.Rows <= 0:
		return &ConfigurationError{Field: "rows", Value: o.Rows, Reason: "must be positive"}
	case o.Cols <= 0:
		return &ConfigurationError{Field: "cols", Value: o.Cols, Reason: "must be positive"}
	case math.IsNaN(o.Density) || o.Density < 0 || o.Density > 1:
		return &ConfigurationError{Field: "density", Value: o.Density, Reason: "must be within [0, 1]"}
	case o.FPS <= 0:
		return &ConfigurationError{Field: "fps", Value: o.FPS, Reason: "must be positive"}
	case o.Duration <= 0:
		return &ConfigurationError{Field: "duration", Value: o.Duration, Reason: "must be positive"}
	case o.Workers < 1:
		return &ConfigurationError{Field: "workers", Value: o.Workers, Reason: "must be at least 1"}
	case o.Interval < 0:
		return &ConfigurationError{Field: "interval", Value: o.Interval, Reason: "must not be negative"}
	}
	return nil
}
