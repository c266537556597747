package core

import (
	"slices"
	"testing"
)

func TestFromRowsRowMajor(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
	}{
		{"2x2", [][]int{{0, 0}, {0, 2}}},
		{"2x3", [][]int{{1, 2, 3}, {4, 5, 6}}},
		{"3x2", [][]int{{2, 4}, {8, 16}, {32, 64}}},
		{"4x4", [][]int{
			{2, 0, 0, 4},
			{0, 8, 0, 0},
			{0, 0, 16, 0},
			{32, 0, 0, 64},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromRows(tt.rows, 0)
			r, c := len(tt.rows), len(tt.rows[0])

			if s.Len() != r*c {
				t.Fatalf("Len() = %d, want %d", s.Len(), r*c)
			}
			if s.Columns() != c {
				t.Errorf("Columns() = %d, want %d", s.Columns(), c)
			}
			for i := 0; i < r; i++ {
				for j := 0; j < c; j++ {
					if got := s.At(i*c + j); got != tt.rows[i][j] {
						t.Errorf("At(%d) = %d, want rows[%d][%d] = %d", i*c+j, got, i, j, tt.rows[i][j])
					}
				}
			}

			back := s.Rows()
			for i := range tt.rows {
				if !slices.Equal(back[i], tt.rows[i]) {
					t.Errorf("Rows()[%d] = %v, want %v", i, back[i], tt.rows[i])
				}
			}
		})
	}
}

func TestBoardStateImmutable(t *testing.T) {
	src := []int{2, 0, 0, 4}
	s := NewBoardState(src, 2, 8)

	src[0] = 1024
	if s.At(0) != 2 {
		t.Errorf("state observed caller mutation: At(0) = %d", s.At(0))
	}

	out := s.Elements()
	out[1] = 512
	if s.At(1) != 0 {
		t.Errorf("state observed mutation through Elements(): At(1) = %d", s.At(1))
	}

	rows := [][]int{{2, 2}, {0, 0}}
	fromRows := FromRows(rows, 0)
	rows[0][0] = 64
	if fromRows.At(0) != 2 {
		t.Errorf("FromRows shares memory with its input: At(0) = %d", fromRows.At(0))
	}
}

func TestBoardStateZero(t *testing.T) {
	var s BoardState
	if !s.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if s.Rows() != nil {
		t.Error("zero value should have nil Rows")
	}
	if s.MaxTile() != 0 {
		t.Errorf("MaxTile() = %d, want 0", s.MaxTile())
	}
	if s.String() != "[]" {
		t.Errorf("String() = %q, want []", s.String())
	}

	loaded := FromRows([][]int{{0, 0}, {0, 0}}, 0)
	if loaded.IsZero() {
		t.Error("an empty but loaded board is not the zero state")
	}
}

func TestBoardStateEqualAndString(t *testing.T) {
	a := FromRows([][]int{{0, 2}, {4, 0}}, 4)
	b := NewBoardState([]int{0, 2, 4, 0}, 2, 4)

	if !a.Equal(b) {
		t.Error("states with the same cells and score should be equal")
	}
	if a.Equal(NewBoardState([]int{0, 2, 4, 0}, 2, 8)) {
		t.Error("states with different scores should differ")
	}
	if a.String() != "[0 2]\n[4 0]" {
		t.Errorf("String() = %q", a.String())
	}
	if a.MaxTile() != 4 {
		t.Errorf("MaxTile() = %d, want 4", a.MaxTile())
	}
}
