package universe

import (
	"math/rand"
	"sync"
	"time"
)

//LifeUniverse drives the evolution engine: exports every settled generation to the sink and advances it
//implements Universe interface
//all the commands are executed one by one by the main loop goroutine, so the engine is never used concurrently
type LifeUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		engine *Engine
		sync.Mutex
	}
	sink      FrameSink
	rng       *rand.Rand
	stateCh   chan Status
	views     []Viewer
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
	loopDone  chan struct{} //closed when the main loop returns
}

//NewUniverse creates the LifeUniverse instance and starts its main loop
//stateCh may be nil, otherwise it receives the Status on every running mode switch and must be drained
func NewUniverse(o Options, sink FrameSink, stateCh chan Status) (*LifeUniverse, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	g, err := NewGrid(o.Rows, o.Cols)
	if err != nil {
		return nil, err
	}
	u := LifeUniverse{
		options:   o,
		sink:      sink,
		rng:       rand.New(rand.NewSource(o.Seed)),
		stateCh:   stateCh,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		loopDone:  make(chan struct{}),
	}
	u.area.engine = NewEngine(g, o.Workers)
	go u.mainLoop()
	return &u, nil
}

//Settle makes the interior cells alive, waits until the command is executed by the main loop
//cells - array of row,col coordinates
func (u *LifeUniverse) Settle(cells [][]int) error {
	return u.exec(func() error {
		return u.settle(cells)
	})
}

//SettleWithRandomData clears the universe and populates it with random data, returns immediately
func (u *LifeUniverse) SettleWithRandomData() {
	u.command(u.clear)
	u.command(u.randomize)
}

//InverseCell inverses the state of the interior cell r, c, waits until the command is executed by the main loop
func (u *LifeUniverse) InverseCell(r int, c int) error {
	return u.exec(func() error {
		return u.inverseCell(r, c)
	})
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *LifeUniverse) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *LifeUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *LifeUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *LifeUniverse) Options() Options {
	return u.options
}

//Snapshot returns the copy of the current settled generation
func (u *LifeUniverse) Snapshot() Snapshot {
	u.area.Lock()
	defer u.area.Unlock()
	return u.area.engine.Current().Snapshot()
}

//Err returns the error which finished the run
func (u *LifeUniverse) Err() error {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Err
}

//Run starts the universe simulation, returns immediately
func (u *LifeUniverse) Run() {
	u.command(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *LifeUniverse) Stop() {
	u.command(u.stop)
}

//Step exports the current generation and advances one generation, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *LifeUniverse) Step() {
	u.command(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *LifeUniverse) Clear() {
	u.command(u.clear)
}

//Close stops the main loop, returns immediately
func (u *LifeUniverse) Close() {
	u.closeOnce.Do(func() {
		close(u.closeCh)
	})
}

//command passes cmd to the main loop, the command is dropped when the universe is closed
func (u *LifeUniverse) command(cmd func()) {
	select {
	case u.controlCh <- cmd:
	case <-u.closeCh:
	}
}

//exec passes cmd to the main loop and waits for its result
func (u *LifeUniverse) exec(cmd func() error) error {
	res := make(chan error, 1)
	select {
	case u.controlCh <- func() { res <- cmd() }:
	case <-u.closeCh:
		return ErrClosed
	}
	select {
	case err := <-res:
		return err
	case <-u.closeCh:
		return ErrClosed
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *LifeUniverse) mainLoop() {
	defer close(u.loopDone)
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			return
		}
	}
}

func (u *LifeUniverse) runningMode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *LifeUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.closeCh:
		}
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when all the frames are exported
func (u *LifeUniverse) run() {
	if mode := u.runningMode(); mode == RunningStateRun || mode == RunningStateFinished {
		return
	}
	u.switchRunningState(RunningStateRun)
	go func() {
		//buffered, the step may complete after the loop below has returned on close
		done := make(chan struct{}, 1)
		for u.runningMode() == RunningStateRun {
			u.command(func() {
				u.step()
				done <- struct{}{}
			})
			select {
			case <-done:
			case <-u.closeCh:
				return
			}
			if u.options.Interval > 0 {
				time.Sleep(u.options.Interval)
			}
		}
	}()
}

//stop stops the universe running cycle
func (u *LifeUniverse) stop() {
	if u.runningMode() == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step exports the current generation to the sink and calculates the next one
//a failed export finishes the run, the generation is not advanced
func (u *LifeUniverse) step() {
	rm := u.runningMode()
	if rm == RunningStateFinished {
		return
	}
	finished := false
	defer func() {
		if finished {
			u.switchRunningState(RunningStateFinished)
		} else {
			u.switchRunningState(rm)
		}
		u.refreshView()
	}()

	u.state.Lock()
	frame := u.state.IterationNum
	u.state.Unlock()
	if frame >= u.options.Frames() {
		finished = true
		return
	}
	u.switchRunningState(RunningStateStep)

	u.area.Lock()
	snapshot := u.area.engine.Current().Snapshot()
	u.area.Unlock()
	if u.sink != nil {
		if err := u.sink.WriteFrame(frame, snapshot); err != nil {
			u.state.Lock()
			u.state.Err = &ExportError{Frame: frame, Err: err}
			u.state.Unlock()
			finished = true
			return
		}
	}

	u.area.Lock()
	st := u.area.engine.Step()
	u.area.Unlock()

	u.state.Lock()
	u.state.IterationNum++
	u.state.LiveCells = st.LiveCells
	u.state.Births = st.Births
	u.state.IterationTime = st.IterationTime
	finished = u.state.IterationNum >= u.options.Frames()
	u.state.Unlock()
}

//clear clears the universe data, reset all counters
func (u *LifeUniverse) clear() {
	u.area.Lock()
	u.area.engine.Current().Clear()
	u.area.Unlock()

	u.state.Lock()
	u.state.IterationNum = 0
	u.state.LiveCells = 0
	u.state.Births = 0
	u.state.IterationTime = 0
	u.state.Err = nil
	u.state.Unlock()
	u.switchRunningState(RunningStateManual)
	u.refreshView()
}

//settle places the born cells, stops on the first bad coordinate
func (u *LifeUniverse) settle(cells [][]int) error {
	u.area.Lock()
	g := u.area.engine.Current()
	var err error
	for _, rc := range cells {
		if err = g.Set(rc[0], rc[1], CellBorn); err != nil {
			break
		}
	}
	liveCells := g.LiveCells()
	u.area.Unlock()
	u.state.Lock()
	u.state.LiveCells = liveCells
	u.state.Unlock()
	u.refreshView()
	return err
}

//inverseCell inverses the state of the cell r, c
func (u *LifeUniverse) inverseCell(r int, c int) error {
	u.area.Lock()
	g := u.area.engine.Current()
	v, err := g.Get(r, c)
	if err == nil {
		if v == CellDead {
			err = g.Set(r, c, CellBorn)
		} else {
			err = g.Set(r, c, CellDead)
		}
	}
	liveCells := g.LiveCells()
	u.area.Unlock()
	if err != nil {
		return err
	}
	u.state.Lock()
	u.state.LiveCells = liveCells
	u.state.Unlock()
	u.refreshView()
	return nil
}

//randomize populates the interior with the seeded random data
func (u *LifeUniverse) randomize() {
	u.area.Lock()
	g := u.area.engine.Current()
	err := g.RandomizeInterior(u.options.Density, u.rng)
	liveCells := g.LiveCells()
	u.area.Unlock()

	u.state.Lock()
	u.state.LiveCells = liveCells
	u.state.Err = err
	u.state.Unlock()
	if err != nil {
		u.switchRunningState(RunningStateFinished)
	}
	u.refreshView()
}

//refreshView calls Refresh event for all registered views
func (u *LifeUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
