package core

import "fmt"

// ActionKind tags the variant of an Action.
type ActionKind int

const (
	kindNone ActionKind = iota
	KindInit
	KindReset
	KindMove
)

// String returns a human-readable name for the kind.
func (k ActionKind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindReset:
		return "reset"
	case KindMove:
		return "move"
	default:
		return "none"
	}
}

// Direction is the direction of a move.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in declaration order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the wire name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection converts a wire name ("up", "down", "left", "right") to a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("core: unknown direction %q", s)
}

// Action is a member of the closed set Init | Reset | Move(direction).
// The zero value is not a valid action.
type Action struct {
	kind ActionKind
	dir  Direction
}

// Init loads the current board without changing it.
func Init() Action { return Action{kind: KindInit} }

// Reset discards the current game and starts a fresh one.
func Reset() Action { return Action{kind: KindReset} }

// Move slides the tiles in direction d.
func Move(d Direction) Action { return Action{kind: KindMove, dir: d} }

// Kind returns the action variant.
func (a Action) Kind() ActionKind { return a.kind }

// Direction returns the move direction. Only meaningful for KindMove.
func (a Action) Direction() Direction { return a.dir }

// IsMove reports whether a is a directional action.
func (a Action) IsMove() bool { return a.kind == KindMove }

// Valid reports whether a is a member of the action set.
func (a Action) Valid() bool {
	switch a.kind {
	case KindInit, KindReset:
		return true
	case KindMove:
		return a.dir.Valid()
	default:
		return false
	}
}

// String returns "init", "reset" or "move:<dir>".
func (a Action) String() string {
	if a.kind == KindMove {
		return "move:" + a.dir.String()
	}
	return a.kind.String()
}

// keyActions maps key identifiers to actions.
// Bubble Tea names ("up") and DOM names ("ArrowUp") are both accepted.
var keyActions = map[string]Action{
	"up":         Move(DirUp),
	"ArrowUp":    Move(DirUp),
	"w":          Move(DirUp),
	"W":          Move(DirUp),
	"down":       Move(DirDown),
	"ArrowDown":  Move(DirDown),
	"s":          Move(DirDown),
	"S":          Move(DirDown),
	"left":       Move(DirLeft),
	"ArrowLeft":  Move(DirLeft),
	"a":          Move(DirLeft),
	"A":          Move(DirLeft),
	"right":      Move(DirRight),
	"ArrowRight": Move(DirRight),
	"d":          Move(DirRight),
	"D":          Move(DirRight),
	"n":          Reset(),
	"N":          Reset(),
	"r":          Reset(),
	"R":          Reset(),
}

// ResolveKey maps a raw key identifier to an action.
// Unrecognized input yields ok == false and is not an error.
func ResolveKey(code string) (action Action, ok bool) {
	action, ok = keyActions[code]
	return action, ok
}
