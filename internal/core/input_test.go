package core

import "testing"

func TestResolveKey(t *testing.T) {
	tests := []struct {
		key  string
		want Action
	}{
		{"up", Move(DirUp)},
		{"w", Move(DirUp)},
		{"ArrowUp", Move(DirUp)},
		{"down", Move(DirDown)},
		{"S", Move(DirDown)},
		{"left", Move(DirLeft)},
		{"a", Move(DirLeft)},
		{"right", Move(DirRight)},
		{"d", Move(DirRight)},
		{"ArrowRight", Move(DirRight)},
		{"n", Reset()},
		{"r", Reset()},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := ResolveKey(tt.key)
			if !ok {
				t.Fatalf("ResolveKey(%q) yielded no action", tt.key)
			}
			if got != tt.want {
				t.Errorf("ResolveKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestResolveKeyUnknown(t *testing.T) {
	for _, key := range []string{"", "x", "q", "ctrl+c", "enter", " ", "esc", "1", "upp"} {
		if a, ok := ResolveKey(key); ok {
			t.Errorf("ResolveKey(%q) = %v, want no action", key, a)
		}
	}
}

func TestActionValid(t *testing.T) {
	var zero Action
	if zero.Valid() {
		t.Error("zero Action must not be valid")
	}
	if !Init().Valid() || !Reset().Valid() {
		t.Error("Init and Reset must be valid")
	}
	for _, d := range Directions {
		if !Move(d).Valid() {
			t.Errorf("Move(%v) must be valid", d)
		}
	}
	if Move(Direction(42)).Valid() {
		t.Error("Move with an unknown direction must not be valid")
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil {
			t.Fatalf("ParseDirection(%q) failed: %v", d.String(), err)
		}
		if got != d {
			t.Errorf("ParseDirection(%q) = %v, want %v", d.String(), got, d)
		}
	}

	if _, err := ParseDirection("diagonal"); err == nil {
		t.Error("ParseDirection should reject unknown names")
	}
}

func TestActionString(t *testing.T) {
	if Move(DirLeft).String() != "move:left" {
		t.Errorf("got %q", Move(DirLeft).String())
	}
	if Reset().String() != "reset" || Init().String() != "init" {
		t.Error("unexpected Init/Reset names")
	}
}
