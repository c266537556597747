package server

import "github.com/vovakirdan/tui-2048/internal/core"

// Grid is a square board of tile values indexed [row][col].
type Grid [][]int

// NewGrid returns an empty size x size grid.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for y := range g {
		g[y] = make([]int, size)
	}
	return g
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for y, row := range g {
		c[y] = append([]int(nil), row...)
	}
	return c
}

// Equal reports whether both grids hold the same values.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for y := range g {
		if len(g[y]) != len(other[y]) {
			return false
		}
		for x := range g[y] {
			if g[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// slideLine slides and merges a line towards index 0.
// Each tile merges at most once per move.
func slideLine(line []int) (result []int, score int) {
	result = make([]int, len(line))
	writePos := 0
	merged := false

	for _, v := range line {
		if v == 0 {
			continue
		}

		if writePos > 0 && !merged && result[writePos-1] == v {
			result[writePos-1] *= 2
			score += result[writePos-1]
			merged = true
		} else {
			result[writePos] = v
			writePos++
			merged = false
		}
	}

	return result, score
}

// line extracts row or column i, ordered in the direction tiles travel.
func (g Grid) line(dir core.Direction, i int) []int {
	n := len(g)
	out := make([]int, n)
	for k := 0; k < n; k++ {
		switch dir {
		case core.DirLeft:
			out[k] = g[i][k]
		case core.DirRight:
			out[k] = g[i][n-1-k]
		case core.DirUp:
			out[k] = g[k][i]
		case core.DirDown:
			out[k] = g[n-1-k][i]
		}
	}
	return out
}

// setLine writes a line produced by line back into the grid.
func (g Grid) setLine(dir core.Direction, i int, vals []int) {
	n := len(g)
	for k := 0; k < n; k++ {
		switch dir {
		case core.DirLeft:
			g[i][k] = vals[k]
		case core.DirRight:
			g[i][n-1-k] = vals[k]
		case core.DirUp:
			g[k][i] = vals[k]
		case core.DirDown:
			g[n-1-k][i] = vals[k]
		}
	}
}

// Slide performs a move in the given direction.
// Returns the new grid, score gained, and whether the grid changed.
func Slide(g Grid, dir core.Direction) (Grid, int, bool) {
	if !dir.Valid() {
		return g, 0, false
	}

	next := g.Clone()
	total := 0
	for i := 0; i < len(g); i++ {
		slid, score := slideLine(g.line(dir, i))
		next.setLine(dir, i, slid)
		total += score
	}
	return next, total, !next.Equal(g)
}

// Cell is a grid coordinate.
type Cell struct{ X, Y int }

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(g Grid) []Cell {
	var cells []Cell
	for y, row := range g {
		for x, v := range row {
			if v == 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
func HasPossibleMerge(g Grid) bool {
	n := len(g)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := g[y][x]
			if x < n-1 && g[y][x+1] == v {
				return true
			}
			if y < n-1 && g[y+1][x] == v {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(g Grid) bool {
	return len(EmptyCells(g)) > 0 || HasPossibleMerge(g)
}
