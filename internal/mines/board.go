package mines

import (
	"fmt"
	"iter"
)

// Source produces uniformly distributed integers in [0, n). A *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Board is a square minefield together with the set of cells the player has
// revealed. A Board is not safe for concurrent use.
type Board struct {
	size      int
	mineCount int
	grid      []CellContent /* real layout, row-major */
	revealed  []bool
	nrevealed int
	exploded  bool
}

// NewBoard places mineCount mines on a size x size grid using r and computes
// every neighbor count. It fails with [ErrInvalidConfiguration] unless
// size >= 1 and 0 <= mineCount < size*size.
func NewBoard(size, mineCount int, r Source) (*Board, error) {
	grid, err := placeMines(size, mineCount, r)
	if err != nil {
		return nil, err
	}
	computeCounts(grid, size)
	return newBoard(size, mineCount, grid), nil
}

// NewBoardFromMines builds a board with mines at exactly the given
// coordinates.
func NewBoardFromMines(size int, mines []Coordinate) (*Board, error) {
	if err := validateConfiguration(size, len(mines)); err != nil {
		return nil, err
	}
	grid := make([]CellContent, size*size)
	for _, c := range mines {
		if !inBounds(size, c) {
			return nil, fmt.Errorf(
				"%w: mine at %v outside %dx%d grid",
				ErrInvalidConfiguration, c, size, size,
			)
		}
		i := c.Row*size + c.Col
		if grid[i] == Mine {
			return nil, fmt.Errorf(
				"%w: duplicate mine at %v", ErrInvalidConfiguration, c,
			)
		}
		grid[i] = Mine
	}
	computeCounts(grid, size)
	return newBoard(size, len(mines), grid), nil
}

func newBoard(size, mineCount int, grid []CellContent) *Board {
	return &Board{
		size:      size,
		mineCount: mineCount,
		grid:      grid,
		revealed:  make([]bool, len(grid)),
	}
}

func validateConfiguration(size, mineCount int) error {
	if size < 1 {
		return fmt.Errorf(
			"%w: size %d must be at least 1", ErrInvalidConfiguration, size,
		)
	}
	if mineCount < 0 || mineCount >= size*size {
		return fmt.Errorf(
			"%w: mine count %d not in [0, %d)",
			ErrInvalidConfiguration, mineCount, size*size,
		)
	}
	return nil
}

// placeMines samples cells uniformly until mineCount distinct cells are
// mined. Collisions are retried and not counted.
func placeMines(size, mineCount int, r Source) ([]CellContent, error) {
	if err := validateConfiguration(size, mineCount); err != nil {
		return nil, err
	}
	n := size * size
	grid := make([]CellContent, n)
	for planted := 0; planted < mineCount; {
		i := r.IntN(n)
		if grid[i] == Mine {
			continue
		}
		grid[i] = Mine
		planted++
	}
	return grid, nil
}

func computeCounts(grid []CellContent, size int) {
	for i := range grid {
		if grid[i] == Mine {
			continue
		}
		var n CellContent
		for j := range neighbors(size, i) {
			if grid[j] == Mine {
				n++
			}
		}
		grid[i] = n
	}
}

// neighbors yields the indices of the up to 8 cells around i, clipped at the
// grid edges.
func neighbors(size, i int) iter.Seq[int] {
	return func(yield func(int) bool) {
		row, col := i/size, i%size
		for r := max(0, row-1); r <= min(size-1, row+1); r++ {
			for c := max(0, col-1); c <= min(size-1, col+1); c++ {
				if r == row && c == col {
					continue
				}
				if !yield(r*size + c) {
					return
				}
			}
		}
	}
}

func inBounds(size int, c Coordinate) bool {
	return 0 <= c.Row && c.Row < size && 0 <= c.Col && c.Col < size
}

func (b *Board) InBounds(c Coordinate) bool {
	return inBounds(b.size, c)
}

func (b *Board) checkBounds(c Coordinate) error {
	if !b.InBounds(c) {
		return fmt.Errorf(
			"%w: %v on %dx%d grid", ErrOutOfBounds, c, b.size, b.size,
		)
	}
	return nil
}

func (b *Board) index(c Coordinate) int {
	return c.Row*b.size + c.Col
}

func (b *Board) markRevealed(i int) {
	if !b.revealed[i] {
		b.revealed[i] = true
		b.nrevealed++
	}
}

// Reveal digs at c. Revealing a zero-count cell also reveals every cell
// reachable from it through other zero-count cells, plus their numbered
// border. Mines are never revealed by the cascade. Revealing an already
// revealed cell changes nothing.
func (b *Board) Reveal(c Coordinate) (Outcome, error) {
	if err := b.checkBounds(c); err != nil {
		return Safe, err
	}

	i := b.index(c)
	if b.revealed[i] {
		return outcomeOf(b.grid[i]), nil
	}

	b.markRevealed(i)
	switch content := b.grid[i]; {
	case content == Mine:
		b.exploded = true
		return HitMine, nil
	case content > 0:
		return Safe, nil
	}

	b.cascade(i)
	return Safe, nil
}

func (b *Board) cascade(start int) {
	todo := newCellQueue(len(b.grid))
	todo.add(start)
	for i, ok := todo.pop(); ok; i, ok = todo.pop() {
		for j := range neighbors(b.size, i) {
			if b.revealed[j] {
				continue
			}
			b.markRevealed(j)
			if b.grid[j] == 0 {
				todo.add(j)
			}
		}
	}
}

// RevealAll marks every cell revealed. It is meant for showing the solution
// once the game is over and cannot be undone.
func (b *Board) RevealAll() {
	for i := range b.revealed {
		b.revealed[i] = true
	}
	b.nrevealed = len(b.revealed)
}

func (b *Board) IsRevealed(c Coordinate) bool {
	return b.InBounds(c) && b.revealed[b.index(c)]
}

func (b *Board) RevealedCount() int {
	return b.nrevealed
}

func (b *Board) IsWon() bool {
	return b.nrevealed == len(b.grid)-b.mineCount
}

// IsLost reports whether a mine was revealed through [Board.Reveal].
func (b *Board) IsLost() bool {
	return b.exploded
}

func (b *Board) ContentAt(c Coordinate) (CellContent, error) {
	if err := b.checkBounds(c); err != nil {
		return 0, err
	}
	return b.grid[b.index(c)], nil
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) MineCount() int {
	return b.mineCount
}

func (b *Board) Grid(mode ViewMode) Grid {
	g := make(Grid, len(b.grid))
	for i, content := range b.grid {
		if mode == Exposed || b.revealed[i] {
			g[i] = CellState(content)
		} else {
			g[i] = Unknown
		}
	}
	return g
}
