package universe

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

//parseGrid builds the grid from the picture: '.' dead, '#' born, 'o' survived, '1' legacy alive value
func parseGrid(t testing.TB, lines ...string) *Grid {
	t.Helper()
	g := mustGrid(t, len(lines), len(lines[0]))
	values := map[byte]uint8{'.': CellDead, '#': CellBorn, 'o': CellSurvived, '1': 1}
	for r, l := range lines {
		for c := 0; c < len(l); c++ {
			v, ok := values[l[c]]
			if !ok {
				t.Fatalf("unknown cell %q", l[c])
			}
			if v != CellDead {
				settle(t, g, v, [2]int{r, c})
			}
		}
	}
	return g
}

//picture is the reverse of parseGrid
func picture(g *Grid) string {
	var b strings.Builder
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			v, _ := g.Get(r, c)
			switch v {
			case CellDead:
				b.WriteByte('.')
			case CellBorn:
				b.WriteByte('#')
			case CellSurvived:
				b.WriteByte('o')
			default:
				b.WriteByte('?')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func assertPicture(t *testing.T, g *Grid, lines ...string) {
	t.Helper()
	want := strings.Join(lines, "\n") + "\n"
	if got := picture(g); got != want {
		t.Fatalf("grid:\n%s\nwant:\n%s", got, want)
	}
}

func randomGrid(t testing.TB, rows int, cols int, density float64, seed int64) *Grid {
	t.Helper()
	g := mustGrid(t, rows, cols)
	if err := g.RandomizeInterior(density, rand.New(rand.NewSource(seed))); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNextValue(t *testing.T) {
	for n := 0; n <= 8; n++ {
		for _, cell := range []uint8{CellDead, 1, 77, CellSurvived, CellBorn} {
			want := CellDead
			switch {
			case n == 2 && cell != CellDead:
				want = CellSurvived
			case n == 3 && cell != CellDead:
				want = CellSurvived
			case n == 3 && cell == CellDead:
				want = CellBorn
			}
			if got := nextValue(n, cell); got != want {
				t.Errorf("nextValue(%d, %d) = %d, want %d", n, cell, got, want)
			}
		}
	}
}

func TestEngine_NeighbourCount(t *testing.T) {
	g := parseGrid(t,
		".....",
		".....",
		"..#..",
		".....",
		".....",
	)
	e := NewEngine(g, 1)
	for r := 1; r <= 3; r++ {
		for c := 1; c <= 3; c++ {
			//manual enumeration of the 3x3 window without the center
			want := 0
			for rr := r - 1; rr <= r+1; rr++ {
				for cc := c - 1; cc <= c+1; cc++ {
					if rr == r && cc == c {
						continue
					}
					if v, _ := g.Get(rr, cc); v != CellDead {
						want++
					}
				}
			}
			if got := e.liveNeighbours(r*5 + c); got != want {
				t.Errorf("neighbours of (%d,%d) = %d, want %d", r, c, got, want)
			}
		}
	}
	if got := e.liveNeighbours(2*5 + 2); got != 0 {
		t.Fatalf("lonely cell has %d neighbours", got)
	}

	st := e.Step()
	assertPicture(t, e.Current(),
		".....",
		".....",
		".....",
		".....",
		".....",
	)
	if st.LiveCells != 0 || st.Births != 0 || !st.Changed {
		t.Fatalf("stats = %+v", st)
	}
}

func TestEngine_StillLife(t *testing.T) {
	g := parseGrid(t,
		"......",
		"......",
		"..##..",
		"..##..",
		"......",
		"......",
	)
	e := NewEngine(g, 1)
	for i := 0; i < 20; i++ {
		st := e.Step()
		assertPicture(t, e.Current(),
			"......",
			"......",
			"..oo..",
			"..oo..",
			"......",
			"......",
		)
		if st.LiveCells != 4 || st.Births != 0 || st.Changed {
			t.Fatalf("step %d stats = %+v", i, st)
		}
	}
	if e.Generation() != 20 {
		t.Fatalf("generation = %d, want 20", e.Generation())
	}
}

func TestEngine_Birth(t *testing.T) {
	g := parseGrid(t,
		".......",
		".......",
		"..##...",
		"..#....",
		".......",
		".......",
		".......",
	)
	e := NewEngine(g, 1)
	st := e.Step()
	assertPicture(t, e.Current(),
		".......",
		".......",
		"..oo...",
		"..o#...",
		".......",
		".......",
		".......",
	)
	if st.LiveCells != 4 || st.Births != 1 || !st.Changed {
		t.Fatalf("stats = %+v", st)
	}
	//the block is settled now
	e.Step()
	assertPicture(t, e.Current(),
		".......",
		".......",
		"..oo...",
		"..oo...",
		".......",
		".......",
		".......",
	)
}

func TestEngine_Death(t *testing.T) {
	g := parseGrid(t,
		".......",
		".......",
		"...#...",
		"...#...",
		"...#...",
		".......",
		".......",
	)
	e := NewEngine(g, 1)
	e.Step()
	assertPicture(t, e.Current(),
		".......",
		".......",
		".......",
		"..#o#..",
		".......",
		".......",
		".......",
	)
	e.Step()
	assertPicture(t, e.Current(),
		".......",
		".......",
		"...#...",
		"...o...",
		"...#...",
		".......",
		".......",
	)

	//the middle cells have 5 neighbours and die, the corners keep 3
	g = parseGrid(t,
		".......",
		".......",
		"..###..",
		"..###..",
		".......",
		".......",
		".......",
	)
	e = NewEngine(g, 1)
	e.Step()
	assertPicture(t, e.Current(),
		".......",
		"...#...",
		"..o.o..",
		"..o.o..",
		"...#...",
		".......",
		".......",
	)
}

func TestEngine_AnyNonzeroIsAlive(t *testing.T) {
	g := parseGrid(t,
		".......",
		".......",
		"..11...",
		"..1....",
		".......",
		".......",
		".......",
	)
	e := NewEngine(g, 1)
	e.Step()
	assertPicture(t, e.Current(),
		".......",
		".......",
		"..oo...",
		"..o#...",
		".......",
		".......",
		".......",
	)
}

func TestEngine_BorderInvariance(t *testing.T) {
	for _, density := range []float64{0.3, 0.5, 1} {
		for _, workers := range []int{1, 4} {
			t.Run(fmt.Sprintf("density %v workers %v", density, workers), func(t *testing.T) {
				e := NewEngine(randomGrid(t, 17, 23, density, 7), workers)
				for i := 0; i < 40; i++ {
					e.Step()
					assertBorderDead(t, e.Current())
				}
			})
		}
	}
}

func TestNewEngine(t *testing.T) {
	g := randomGrid(t, 7, 9, 0.5, 4)
	e := NewEngine(g, 2)
	if e.Current() != g {
		t.Fatal("the grid is not the current generation")
	}
	if e.scratch.rows != 7 || e.scratch.cols != 9 || len(e.scratch.cells) != 7*9 {
		t.Fatalf("scratch is %dx%d with %d cells", e.scratch.rows, e.scratch.cols, len(e.scratch.cells))
	}
	if e.scratch.LiveCells() != 0 {
		t.Fatal("scratch is not dead")
	}
}

func TestEngine_ScratchIsCleared(t *testing.T) {
	e := NewEngine(randomGrid(t, 12, 12, 0.5, 11), 1)
	for i := 0; i < 5; i++ {
		st := e.Step()
		for j, v := range e.scratch.cells {
			if v != CellDead {
				t.Fatalf("step %d: scratch cell %d is %d", i, j, v)
			}
		}
		if n := e.Current().LiveCells(); n != st.LiveCells {
			t.Fatalf("step %d: live cells = %d, stats say %d", i, n, st.LiveCells)
		}
	}
}

func TestEngine_OrderIndependence(t *testing.T) {
	const rows, cols = 19, 27
	rng := rand.New(rand.NewSource(5))
	ordered := NewEngine(randomGrid(t, rows, cols, 0.45, 21), 1)
	shuffled := NewEngine(randomGrid(t, rows, cols, 0.45, 21), 1)
	order := make([]int, rows*cols)
	for i := range order {
		order[i] = i
	}
	for step := 0; step < 15; step++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		ordered.Step()
		shuffled.stepInOrder(order)
		if !bytes.Equal(ordered.Current().cells, shuffled.Current().cells) {
			t.Fatalf("step %d: shuffled order gives\n%s\nwant\n%s", step, picture(shuffled.Current()), picture(ordered.Current()))
		}
	}
}

func TestEngine_Workers(t *testing.T) {
	const rows, cols = 23, 31
	sequential := NewEngine(randomGrid(t, rows, cols, 0.5, 99), 1)
	parallel := map[int]*Engine{}
	for _, w := range []int{2, 3, 7, 50} {
		parallel[w] = NewEngine(randomGrid(t, rows, cols, 0.5, 99), w)
	}
	for step := 0; step < 25; step++ {
		want := sequential.Step()
		for w, e := range parallel {
			got := e.Step()
			if !bytes.Equal(sequential.Current().cells, e.Current().cells) {
				t.Fatalf("step %d: %d workers differ from the sequential engine", step, w)
			}
			if got.LiveCells != want.LiveCells || got.Births != want.Births || got.Changed != want.Changed {
				t.Fatalf("step %d: %d workers stats = %+v, want %+v", step, w, got, want)
			}
		}
	}
}

func TestSplitBands(t *testing.T) {
	tests := []struct {
		rows, workers int
		bands         int
	}{
		{1, 4, 0},
		{2, 4, 0},
		{3, 1, 1},
		{3, 4, 1},
		{12, 1, 1},
		{12, 2, 2},
		{23, 7, 7},
		{23, 50, 7},
		{102, 10, 10},
		{103, 10, 10},
	}
	for _, tt := range tests {
		bands := splitBands(tt.rows, tt.workers)
		if len(bands) != tt.bands {
			t.Errorf("splitBands(%d, %d) = %d bands, want %d", tt.rows, tt.workers, len(bands), tt.bands)
			continue
		}
		//the bands cover the interior rows exactly once
		next := 1
		for _, b := range bands {
			if b.r1 != next || b.r2 < b.r1 {
				t.Fatalf("splitBands(%d, %d) = %+v", tt.rows, tt.workers, bands)
			}
			next = b.r2 + 1
		}
		if len(bands) > 0 && next != tt.rows-1 {
			t.Fatalf("splitBands(%d, %d) ends at row %d", tt.rows, tt.workers, next-1)
		}
	}
}

func TestEngine_TinyGrids(t *testing.T) {
	for _, d := range [][2]int{{1, 1}, {2, 5}, {5, 2}, {3, 3}} {
		g := randomGrid(t, d[0], d[1], 1, 1)
		e := NewEngine(g, 4)
		st := e.Step()
		if n := e.Current().LiveCells(); n != 0 || st.LiveCells != 0 {
			t.Fatalf("%dx%d grid has %d live cells", d[0], d[1], n)
		}
	}
}

func TestEngine_Determinism(t *testing.T) {
	run := func() []uint8 {
		e := NewEngine(randomGrid(t, 40, 60, 0.5, 2024), 3)
		for i := 0; i < 30; i++ {
			e.Step()
		}
		return e.Current().Snapshot().Pix
	}
	if !bytes.Equal(run(), run()) {
		t.Fatal("the same seed gives different generations")
	}
}
