package server

import (
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Game is the single authoritative board served by the service.
// Not safe for concurrent use; Server serializes access.
type Game struct {
	rng        *rand.Rand
	size       int
	spawn4Prob float64

	grid  Grid
	score int
	over  bool
}

// NewGame creates a game and deals the opening tiles.
func NewGame(size int, spawn4Prob float64, seed int64) *Game {
	g := &Game{
		rng:        rand.New(rand.NewSource(seed)),
		size:       size,
		spawn4Prob: spawn4Prob,
	}
	g.Reset()
	return g
}

// Reset clears the board and spawns two tiles.
func (g *Game) Reset() {
	g.grid = NewGrid(g.size)
	g.score = 0
	g.over = false
	g.spawnTile()
	g.spawnTile()
}

// Restore replaces the board with a saved one.
func (g *Game) Restore(grid Grid, score int, over bool) {
	g.grid = grid.Clone()
	g.size = len(grid)
	g.score = score
	g.over = over
}

// Move applies one move. A move that changes nothing spawns nothing,
// and moves after game over are ignored.
func (g *Game) Move(dir core.Direction) (changed bool) {
	if g.over {
		return false
	}

	next, gained, changed := Slide(g.grid, dir)
	if !changed {
		return false
	}

	g.grid = next
	g.score += gained
	g.spawnTile()

	if !CanMove(g.grid) {
		g.over = true
	}
	return true
}

// spawnTile places a 2 (or a 4 with probability spawn4Prob) in a random empty cell.
func (g *Game) spawnTile() {
	empty := EmptyCells(g.grid)
	if len(empty) == 0 {
		return
	}

	cell := empty[g.rng.Intn(len(empty))]
	value := 2
	if g.rng.Float64() < g.spawn4Prob {
		value = 4
	}
	g.grid[cell.Y][cell.X] = value
}

// Rows returns a copy of the grid.
func (g *Game) Rows() Grid { return g.grid.Clone() }

// Score returns the accumulated merge score.
func (g *Game) Score() int { return g.score }

// Over reports whether no move is possible.
func (g *Game) Over() bool { return g.over }
