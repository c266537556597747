// Package core provides the fundamental types of the 2048 client.
// It contains no external dependencies (especially no Bubble Tea) so the
// engine and transport can share it and tests stay pure.
package core

import (
	"fmt"
	"slices"
	"strings"
)

// BoardState is an immutable snapshot of the board as published by the engine.
// Elements are tile values in row-major order; 0 marks an empty cell.
type BoardState struct {
	elements []int
	cols     int
	score    int
}

// NewBoardState builds a state from already flattened elements.
// The slice is copied, so later changes by the caller are not observed.
func NewBoardState(elements []int, cols, score int) BoardState {
	return BoardState{
		elements: slices.Clone(elements),
		cols:     cols,
		score:    score,
	}
}

// FromRows flattens a 2-D grid row by row, then column by column.
// Callers are expected to validate the grid shape first.
func FromRows(rows [][]int, score int) BoardState {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}

	elements := make([]int, 0, len(rows)*cols)
	for _, row := range rows {
		elements = append(elements, row...)
	}

	return BoardState{elements: elements, cols: cols, score: score}
}

// Elements returns a copy of the tile values.
func (s BoardState) Elements() []int {
	return slices.Clone(s.elements)
}

// At returns the value at flat index i.
func (s BoardState) At(i int) int {
	return s.elements[i]
}

// Len returns the number of cells.
func (s BoardState) Len() int {
	return len(s.elements)
}

// Columns returns the board width.
func (s BoardState) Columns() int {
	return s.cols
}

// Score returns the current score.
func (s BoardState) Score() int {
	return s.score
}

// IsZero reports whether the state was never loaded.
func (s BoardState) IsZero() bool {
	return len(s.elements) == 0 && s.score == 0
}

// Rows reconstructs the grid. Returns nil for an unloaded state.
func (s BoardState) Rows() [][]int {
	if s.cols <= 0 || len(s.elements) == 0 {
		return nil
	}

	rows := make([][]int, 0, len(s.elements)/s.cols)
	for i := 0; i < len(s.elements); i += s.cols {
		end := min(i+s.cols, len(s.elements))
		rows = append(rows, slices.Clone(s.elements[i:end]))
	}
	return rows
}

// MaxTile returns the highest tile value on the board.
func (s BoardState) MaxTile() int {
	if len(s.elements) == 0 {
		return 0
	}
	return slices.Max(s.elements)
}

// Equal reports whether both states hold the same cells and score.
func (s BoardState) Equal(other BoardState) bool {
	return s.score == other.score && s.cols == other.cols && slices.Equal(s.elements, other.elements)
}

// String renders the grid as bracketed rows, e.g. "[0 2]\n[4 0]".
func (s BoardState) String() string {
	rows := s.Rows()
	if rows == nil {
		return "[]"
	}

	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('[')
		for j, v := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d", v)
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
