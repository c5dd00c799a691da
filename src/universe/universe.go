package universe

import "time"

type Universe interface {
	Status() Status
	Options() Options
	Snapshot() Snapshot
	StateCh() chan Status
	Settle(cells [][]int) error
	SettleWithRandomData()
	InverseCell(r int, c int) error
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
	Err() error
}

//FrameSink receives every settled generation before the universe advances
//the universe never touches the snapshot again, the sink must not modify it
type FrameSink interface {
	WriteFrame(index int, s Snapshot) error
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int //frames exported so far
	RunningMode   RunningState
	LiveCells     int
	Births        int
	IterationTime time.Duration
	Err           error
}

//The universe running status at the concrete moment
type RunningState int

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)
