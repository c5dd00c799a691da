package universe

import (
	"sync"
	"time"
)

/*
	Evolution engine with two buffers of the same size
	the next generation is calculated from the current buffer into the scratch buffer,
	then the buffers are swapped and the old current one is cleared to become the next scratch
	with more than one worker the interior rows are split into bands each of which is computed by individual goroutine
*/

const (
	DefWorkers          = 1 //default workers
	DefMinRowsPerWorker = 3 //minimum rows for one worker
)

//StepStats describes one computed generation
type StepStats struct {
	LiveCells     int
	Births        int
	Changed       bool
	IterationTime time.Duration
}

//Engine owns the current and the scratch grids
type Engine struct {
	cur        *Grid
	scratch    *Grid
	generation int
	bands      []band
}

//band describes the rows r1..r2 (inclusive) computed by one worker
type band struct {
	r1        int
	r2        int
	liveCells int
	births    int
	changed   bool
}

//NewEngine creates the engine, g becomes the current generation and must not be modified by the caller anymore
//g must be created by NewGrid, the scratch grid takes its dimensions
func NewEngine(g *Grid, workers int) *Engine {
	scratch := &Grid{rows: g.rows, cols: g.cols, cells: make([]uint8, len(g.cells))}
	e := Engine{cur: g, scratch: scratch}
	e.bands = splitBands(g.rows, workers)
	return &e
}

//splitBands divides the interior rows between the workers
func splitBands(rows int, workers int) []band {
	interior := rows - 2
	if interior <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	linesPerWorker := interior / workers
	if linesPerWorker < DefMinRowsPerWorker {
		linesPerWorker = DefMinRowsPerWorker
	} else if linesPerWorker*workers < interior {
		linesPerWorker++
	}
	bands := make([]band, 0, workers)
	for r1 := 1; r1 <= interior; r1 += linesPerWorker {
		r2 := r1 + linesPerWorker - 1
		if r2 > interior {
			r2 = interior
		}
		bands = append(bands, band{r1: r1, r2: r2})
	}
	return bands
}

//Current returns the settled generation
func (e *Engine) Current() *Grid {
	return e.cur
}

//Generation returns the number of steps done
func (e *Engine) Generation() int {
	return e.generation
}

//Workers returns the count of goroutines used by Step
func (e *Engine) Workers() int {
	return len(e.bands)
}

//Step calculates the next generation and commits it as the current one
func (e *Engine) Step() (st StepStats) {
	start := time.Now()
	if len(e.bands) == 1 {
		e.calcBand(&e.bands[0])
	} else {
		var waitGroup sync.WaitGroup
		for i := range e.bands {
			b := &e.bands[i]
			waitGroup.Add(1)
			go func() {
				e.calcBand(b)
				waitGroup.Done()
			}()
		}
		waitGroup.Wait()
	}
	for _, b := range e.bands {
		st.LiveCells += b.liveCells
		st.Births += b.births
		st.Changed = st.Changed || b.changed
	}
	e.commit()
	st.IterationTime = time.Since(start)
	return
}

//stepInOrder calculates the interior cells in the given order (indexes into the flat buffer)
//and commits the result, used to check that the result does not depend on the order
func (e *Engine) stepInOrder(order []int) {
	cols := e.cur.cols
	for _, i := range order {
		r, c := i/cols, i%cols
		if !e.cur.interior(r, c) {
			continue
		}
		e.scratch.cells[i] = e.cellNextValue(i)
	}
	e.commit()
}

//calcBand calculates the new values for the interior cells of the band
//reads the current buffer only, writes the band rows of the scratch buffer only
func (e *Engine) calcBand(b *band) {
	b.liveCells, b.births, b.changed = 0, 0, false
	cols := e.cur.cols
	for r := b.r1; r <= b.r2; r++ {
		for c := 1; c < cols-1; c++ {
			i := r*cols + c
			v := e.cellNextValue(i)
			if v != CellDead {
				b.liveCells++
			}
			if v == CellBorn {
				b.births++
			}
			b.changed = b.changed || (v != CellDead) != (e.cur.cells[i] != CellDead)
			e.scratch.cells[i] = v
		}
	}
}

//cellNextValue applies the rules to the interior cell i
func (e *Engine) cellNextValue(i int) uint8 {
	return nextValue(e.liveNeighbours(i), e.cur.cells[i])
}

//liveNeighbours counts the nonzero cells around the interior cell i
func (e *Engine) liveNeighbours(i int) int {
	cells := e.cur.cells
	cols := e.cur.cols
	liveNeighbours := 0
	for dr := -1; dr < 2; dr++ {
		for dc := -1; dc < 2; dc++ {
			//skip my position
			if dr == 0 && dc == 0 {
				continue
			}
			if cells[i+dr*cols+dc] != CellDead {
				liveNeighbours++
			}
		}
	}
	return liveNeighbours
}

//commit makes the scratch buffer current and clears the old current one for the next step
func (e *Engine) commit() {
	e.cur, e.scratch = e.scratch, e.cur
	e.scratch.Clear()
	e.generation++
}
