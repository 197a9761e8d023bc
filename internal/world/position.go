package world

import (
	"fmt"
	"strings"
)

// Position is a grid coordinate. Row 0 is the monster side of the board.
type Position struct {
	Row, Col int
}

// Translate returns the position offset by the given deltas.
func (p Position) Translate(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Step returns the neighbouring position in the given direction.
func (p Position) Step(d Direction) Position {
	dRow, dCol := d.Delta()
	return p.Translate(dRow, dCol)
}

// Distance returns the Manhattan distance between two positions.
func (p Position) Distance(o Position) int {
	return abs(p.Row-o.Row) + abs(p.Col-o.Col)
}

// String returns the position as "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is a single-step movement on the grid.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	Stay
)

var directionDeltas = [...][2]int{
	North: {-1, 0},
	South: {1, 0},
	East:  {0, 1},
	West:  {0, -1},
	Stay:  {0, 0},
}

// Delta returns the (row, col) offset of the direction.
func (d Direction) Delta() (dRow, dCol int) {
	if d < 0 || int(d) >= len(directionDeltas) {
		return 0, 0
	}
	return directionDeltas[d][0], directionDeltas[d][1]
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	case Stay:
		return "stay"
	default:
		return "unknown"
	}
}

// ParseDirection accepts compass letters, names, and up/down/left/right.
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "n", "north", "up":
		return North, nil
	case "s", "south", "down":
		return South, nil
	case "e", "east", "right":
		return East, nil
	case "w", "west", "left":
		return West, nil
	default:
		return Stay, fmt.Errorf("invalid direction %q", token)
	}
}
