package mines

import (
	"fmt"
	"strconv"
)

// CellContent is what a grid position hides: either [Mine] or the number of
// mined neighbors, 0 through 8.
type CellContent int8

const Mine CellContent = -1

// Count returns the content of a safe cell with n mined neighbors.
func Count(n int) CellContent {
	if n < 0 || n > 8 {
		panic(fmt.Sprintf("mines: neighbor count %d out of range", n))
	}
	return CellContent(n)
}

func (c CellContent) IsMine() bool {
	return c == Mine
}

// Neighbors reports the mined neighbor count; ok is false for a mine.
func (c CellContent) Neighbors() (n int, ok bool) {
	if c == Mine {
		return 0, false
	}
	return int(c), true
}

func (c CellContent) String() string {
	if c == Mine {
		return "*"
	}
	return strconv.Itoa(int(c))
}

type Outcome int

const (
	Safe Outcome = iota
	HitMine
)

func (o Outcome) String() string {
	switch o {
	case Safe:
		return "safe"
	case HitMine:
		return "hit mine"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

func outcomeOf(c CellContent) Outcome {
	if c == Mine {
		return HitMine
	}
	return Safe
}

type Coordinate struct {
	Row int `json:"row" schema:"row,required"`
	Col int `json:"col" schema:"col,required"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}
