package mines

import "strconv"

// CellState is a cell as the player sees it.
type CellState int8

const (
	Unknown CellState = -2
	Mined   CellState = -1
	// 0-8 for a revealed safe cell with that many mined neighbors
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == Mined:
		return "*"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

func (s CellState) Known() bool {
	return s != Unknown
}

// Grid is a row-major snapshot of a board, size*size cells long.
type Grid []CellState

func (g Grid) At(size int, c Coordinate) CellState {
	return g[c.Row*size+c.Col]
}

type ViewMode int

const (
	// Masked shows revealed cells and hides the rest.
	Masked ViewMode = iota
	// Exposed shows every cell regardless of the revealed set.
	Exposed
)
