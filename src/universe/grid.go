package universe

import "math"

//cell values, any nonzero value is alive
const (
	CellDead     uint8 = 0
	CellSurvived uint8 = 128
	CellBorn     uint8 = 255
)

//RandomSource produces uniform values in [0,1), *rand.Rand satisfies it
type RandomSource interface {
	Float64() float64
}

//Snapshot is the row-major copy of one settled generation
type Snapshot struct {
	Rows int
	Cols int
	Pix  []uint8
}

//At returns the value of the cell r, c, the coordinates must be inside the snapshot
func (s Snapshot) At(r int, c int) uint8 {
	return s.Pix[r*s.Cols+c]
}

//Grid is the rows x cols lattice of 8-bit cells stored in one flat buffer
//the outer ring of cells (border) is never alive
type Grid struct {
	rows  int
	cols  int
	cells []uint8
}

//NewGrid allocates a zero-initialized (all dead) grid
func NewGrid(rows int, cols int) (*Grid, error) {
	if rows <= 0 {
		return nil, &ConfigurationError{Field: "rows", Value: rows, Reason: "must be positive"}
	}
	if cols <= 0 {
		return nil, &ConfigurationError{Field: "cols", Value: cols, Reason: "must be positive"}
	}
	return &Grid{rows: rows, cols: cols, cells: make([]uint8, rows*cols)}, nil
}

func (g *Grid) Rows() int {
	return g.rows
}

func (g *Grid) Cols() int {
	return g.cols
}

//RandomizeInterior makes every interior cell alive with probability density
//rng is called exactly once per interior cell in row-major order
func (g *Grid) RandomizeInterior(density float64, rng RandomSource) error {
	if math.IsNaN(density) || density < 0 || density > 1 {
		return &ConfigurationError{Field: "density", Value: density, Reason: "must be within [0, 1]"}
	}
	for r := 1; r < g.rows-1; r++ {
		row := g.cells[r*g.cols : (r+1)*g.cols]
		for c := 1; c < g.cols-1; c++ {
			if rng.Float64() < density {
				row[c] = CellBorn
			} else {
				row[c] = CellDead
			}
		}
	}
	return nil
}

//Get returns the stored value of the cell r, c
func (g *Grid) Get(r int, c int) (uint8, error) {
	if !g.inside(r, c) {
		return 0, &BoundsError{Row: r, Col: c, Rows: g.rows, Cols: g.cols}
	}
	return g.cells[r*g.cols+c], nil
}

//Set stores v into the interior cell r, c
func (g *Grid) Set(r int, c int, v uint8) error {
	if !g.inside(r, c) {
		return &BoundsError{Row: r, Col: c, Rows: g.rows, Cols: g.cols}
	}
	if !g.interior(r, c) {
		return &BoundsError{Row: r, Col: c, Rows: g.rows, Cols: g.cols, Interior: true}
	}
	g.cells[r*g.cols+c] = v
	return nil
}

//Snapshot copies the buffer, the copy is never touched by the following generations
func (g *Grid) Snapshot() Snapshot {
	pix := make([]uint8, len(g.cells))
	copy(pix, g.cells)
	return Snapshot{Rows: g.rows, Cols: g.cols, Pix: pix}
}

//LiveCells counts the nonzero cells
func (g *Grid) LiveCells() int {
	n := 0
	for _, v := range g.cells {
		if v != CellDead {
			n++
		}
	}
	return n
}

//Clear kills all cells
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = CellDead
	}
}

func (g *Grid) inside(r int, c int) bool {
	return r >= 0 && c >= 0 && r < g.rows && c < g.cols
}

func (g *Grid) interior(r int, c int) bool {
	return r >= 1 && c >= 1 && r < g.rows-1 && c < g.cols-1
}
