package physics

// SpatialGrid buckets object indices by position for broad-phase queries in
// the wrapping world. Each axis is split into equal cells that tile the world exactly and are at
// least minCell wide, so any pair closer than minCell on the torus lands in
// neighboring cells, including across the wrap seam.
type SpatialGrid struct {
	bounds Bounds
	invW   float32 // cols / width
	invH   float32 // rows / height
	cols   int
	rows   int
	cells  []gridCell
}

// gridCell holds the indices inserted into one cell. Its slice is reused
// across ticks.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering b whose cells are at least
// minCell on each side.
func NewSpatialGrid(b Bounds, minCell float32) *SpatialGrid {
	g := &SpatialGrid{bounds: b}
	g.Reset(minCell)
	return g
}

// Reset empties the grid and re-tiles it for a new minimum cell size. Cell
// memory is kept when the tiling does not change.
func (g *SpatialGrid) Reset(minCell float32) {
	cols := cellCount(g.bounds.Width, minCell)
	rows := cellCount(g.bounds.Height, minCell)
	if cols != g.cols || rows != g.rows {
		g.cols = cols
		g.rows = rows
		g.cells = make([]gridCell, cols*rows)
		g.invW = float32(cols) / g.bounds.Width
		g.invH = float32(rows) / g.bounds.Height
		return
	}
	g.Clear()
}

// cellCount returns how many equal cells of width >= minCell tile dim.
func cellCount(dim, minCell float32) int {
	if minCell <= 0 || dim <= 0 {
		return 1
	}
	n := int(dim / minCell)
	if n < 1 {
		n = 1
	}
	return n
}

// Clear empties every cell and keeps their memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert records index at world position p.
func (g *SpatialGrid) Insert(p Vec, index int) {
	col, row := g.posToCell(p)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item in the cells neighboring p, including
// across the wrap seam. Each distinct cell is visited once, so a grid with
// fewer than three cells on an axis does not repeat items. Iteration stops
// when fn returns true.
func (g *SpatialGrid) QueryAround(p Vec, fn func(index int) bool) {
	col, row := g.posToCell(p)
	rows, nr := neighbors(row, g.rows)
	cols, nc := neighbors(col, g.cols)

	for _, r := range rows[:nr] {
		base := r * g.cols
		for _, c := range cols[:nc] {
			for _, item := range g.cells[base+c].items {
				if fn(item) {
					return
				}
			}
		}
	}
}

// neighbors returns the distinct wrapped cells i-1, i, i+1 of an n-cell axis.
func neighbors(i, n int) ([3]int, int) {
	switch n {
	case 1:
		return [3]int{i}, 1
	case 2:
		return [3]int{i, 1 - i}, 2
	}
	return [3]int{(i + n - 1) % n, i, (i + 1) % n}, 3
}

// posToCell maps a world position to its cell, clamped for positions that
// float rounding puts on the far edge.
func (g *SpatialGrid) posToCell(p Vec) (col, row int) {
	col = min(max(int(p.X*g.invW), 0), g.cols-1)
	row = min(max(int(p.Y*g.invH), 0), g.rows-1)
	return col, row
}
