package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays values in order, reducing each into range.
type scriptedSource struct {
	values []int
	calls  int
}

func (s *scriptedSource) IntN(n int) int {
	v := s.values[s.calls%len(s.values)] % n
	s.calls++
	return v
}

func bruteForceCount(b *Board, c Coordinate) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			content, err := b.ContentAt(Coordinate{c.Row + dr, c.Col + dc})
			if err == nil && content.IsMine() {
				n++
			}
		}
	}
	return n
}

// floodReference is the straightforward recursive dig, visiting neighbors in
// the order given by dirs.
func floodReference(b *Board, c Coordinate, dug map[Coordinate]bool, dirs [][2]int) {
	dug[c] = true
	content, _ := b.ContentAt(c)
	if content != 0 {
		return
	}
	for _, d := range dirs {
		n := Coordinate{c.Row + d[0], c.Col + d[1]}
		if !b.InBounds(n) || dug[n] {
			continue
		}
		floodReference(b, n, dug, dirs)
	}
}

var (
	forwardDirs  = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	backwardDirs = [][2]int{{1, 1}, {1, 0}, {1, -1}, {0, 1}, {0, -1}, {-1, 1}, {-1, 0}, {-1, -1}}
)

func revealedSet(b *Board) map[Coordinate]bool {
	set := make(map[Coordinate]bool)
	for r := range b.Size() {
		for c := range b.Size() {
			if b.IsRevealed(Coordinate{r, c}) {
				set[Coordinate{r, c}] = true
			}
		}
	}
	return set
}

func TestNewBoardLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		size, mineCount int
	}{
		{"1x1(0)", 1, 0},
		{"2x2(3)", 2, 3},
		{"5x5(1)", 5, 1},
		{"10x10(10)", 10, 10},
		{"9x9(80)", 9, 80},
		{"16x16(40)", 16, 40},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			b, err := NewBoard(test.size, test.mineCount, r)
			require.NoError(t, err)

			mines := 0
			for row := range test.size {
				for col := range test.size {
					c := Coordinate{row, col}
					content, err := b.ContentAt(c)
					require.NoError(t, err)
					if content.IsMine() {
						mines++
						continue
					}
					n, ok := content.Neighbors()
					require.True(t, ok)
					assert.Equal(t, bruteForceCount(b, c), n, "count at %v", c)
				}
			}
			assert.Equal(t, test.mineCount, mines)
			assert.Equal(t, test.mineCount, b.MineCount())
			assert.Zero(t, b.RevealedCount())
		})
	}
}

func TestNewBoardInvalidConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		size, mineCount int
	}{
		{"zero size", 0, 0},
		{"negative size", -3, 0},
		{"negative mines", 3, -1},
		{"grid full of mines", 3, 9},
		{"more mines than cells", 2, 7},
		{"single cell mine", 1, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewBoard(test.size, test.mineCount, rand.New(rand.NewPCG(1, 2)))
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestPlaceMinesRetriesCollisions(t *testing.T) {
	src := &scriptedSource{values: []int{4, 4, 4, 0}}
	b, err := NewBoard(3, 2, src)
	require.NoError(t, err)

	assert.Equal(t, 4, src.calls)
	for _, c := range []Coordinate{{1, 1}, {0, 0}} {
		content, err := b.ContentAt(c)
		require.NoError(t, err)
		assert.True(t, content.IsMine(), "expected mine at %v", c)
	}
	content, _ := b.ContentAt(Coordinate{0, 1})
	assert.Equal(t, Count(2), content)
	content, _ = b.ContentAt(Coordinate{2, 2})
	assert.Equal(t, Count(1), content)
}

func TestNewBoardFromMines(t *testing.T) {
	_, err := NewBoardFromMines(3, []Coordinate{{0, 0}, {0, 0}})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewBoardFromMines(3, []Coordinate{{3, 0}})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewBoardFromMines(1, []Coordinate{{0, 0}})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestSingleCellBoard(t *testing.T) {
	b, err := NewBoard(1, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	content, err := b.ContentAt(Coordinate{0, 0})
	require.NoError(t, err)
	assert.Equal(t, Count(0), content)

	outcome, err := b.Reveal(Coordinate{0, 0})
	require.NoError(t, err)
	assert.Equal(t, Safe, outcome)
	assert.Equal(t, 1, b.RevealedCount())
	assert.True(t, b.IsWon())
}

func TestRevealCascadesOverEmptyBoard(t *testing.T) {
	b, err := NewBoard(3, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	outcome, err := b.Reveal(Coordinate{1, 1})
	require.NoError(t, err)
	assert.Equal(t, Safe, outcome)
	assert.Equal(t, 9, b.RevealedCount())
	assert.True(t, b.IsWon())
}

func TestCornerMineCounts(t *testing.T) {
	b, err := NewBoardFromMines(5, []Coordinate{{0, 0}})
	require.NoError(t, err)

	for c, want := range map[Coordinate]CellContent{
		{0, 1}: Count(1),
		{1, 0}: Count(1),
		{1, 1}: Count(1),
		{0, 2}: Count(0),
		{4, 4}: Count(0),
		{0, 0}: Mine,
	} {
		got, err := b.ContentAt(c)
		require.NoError(t, err)
		assert.Equal(t, want, got, "content at %v", c)
	}

	outcome, err := b.Reveal(Coordinate{4, 4})
	require.NoError(t, err)
	assert.Equal(t, Safe, outcome)
	assert.Equal(t, 24, b.RevealedCount())
	assert.False(t, b.IsRevealed(Coordinate{0, 0}))
	assert.True(t, b.IsWon())
}

func TestRevealStopsAtNumberedCells(t *testing.T) {
	wall := []Coordinate{{0, 2}, {1, 2}, {2, 2}, {3, 2}, {4, 2}}
	b, err := NewBoardFromMines(5, wall)
	require.NoError(t, err)

	_, err = b.Reveal(Coordinate{0, 0})
	require.NoError(t, err)

	assert.Equal(t, 10, b.RevealedCount())
	for row := range 5 {
		assert.True(t, b.IsRevealed(Coordinate{row, 0}))
		assert.True(t, b.IsRevealed(Coordinate{row, 1}))
		assert.False(t, b.IsRevealed(Coordinate{row, 2}))
		assert.False(t, b.IsRevealed(Coordinate{row, 3}))
		assert.False(t, b.IsRevealed(Coordinate{row, 4}))
	}
	assert.False(t, b.IsWon())
	assert.False(t, b.IsLost())
}

func TestRevealNumberedCellDoesNotCascade(t *testing.T) {
	b, err := NewBoardFromMines(5, []Coordinate{{0, 0}})
	require.NoError(t, err)

	outcome, err := b.Reveal(Coordinate{1, 1})
	require.NoError(t, err)
	assert.Equal(t, Safe, outcome)
	assert.Equal(t, 1, b.RevealedCount())
}

func TestRevealMine(t *testing.T) {
	b, err := NewBoardFromMines(4, []Coordinate{{2, 1}})
	require.NoError(t, err)

	_, err = b.Reveal(Coordinate{0, 3})
	require.NoError(t, err)
	before := b.RevealedCount()

	outcome, err := b.Reveal(Coordinate{2, 1})
	require.NoError(t, err)
	assert.Equal(t, HitMine, outcome)
	assert.Equal(t, before+1, b.RevealedCount())
	assert.True(t, b.IsRevealed(Coordinate{2, 1}))
	assert.True(t, b.IsLost())
}

func TestRevealIsIdempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		b, err := NewBoard(8, 10, r)
		require.NoError(t, err)
		twice, err := NewBoardFromMines(8, minesOf(b))
		require.NoError(t, err)

		c := Coordinate{r.IntN(8), r.IntN(8)}
		first, err := b.Reveal(c)
		require.NoError(t, err)

		_, err = twice.Reveal(c)
		require.NoError(t, err)
		second, err := twice.Reveal(c)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, revealedSet(b), revealedSet(twice))
		assert.Equal(t, b.RevealedCount(), twice.RevealedCount())
	}
}

func minesOf(b *Board) []Coordinate {
	var mines []Coordinate
	for row := range b.Size() {
		for col := range b.Size() {
			if content, _ := b.ContentAt(Coordinate{row, col}); content.IsMine() {
				mines = append(mines, Coordinate{row, col})
			}
		}
	}
	return mines
}

func TestRevealMatchesRecursiveDig(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		b, err := NewBoard(12, 20, r)
		require.NoError(t, err)

		var start Coordinate
		for {
			start = Coordinate{r.IntN(12), r.IntN(12)}
			if content, _ := b.ContentAt(start); content == 0 {
				break
			}
		}

		forward := make(map[Coordinate]bool)
		floodReference(b, start, forward, forwardDirs)
		backward := make(map[Coordinate]bool)
		floodReference(b, start, backward, backwardDirs)
		require.Equal(t, forward, backward)

		_, err = b.Reveal(start)
		require.NoError(t, err)
		got := revealedSet(b)
		assert.Equal(t, forward, got)

		for c := range got {
			content, _ := b.ContentAt(c)
			assert.False(t, content.IsMine(), "cascade revealed mine at %v", c)
			if content == 0 {
				for _, d := range forwardDirs {
					n := Coordinate{c.Row + d[0], c.Col + d[1]}
					if b.InBounds(n) {
						assert.True(t, got[n], "zero cell %v left neighbor %v hidden", c, n)
					}
				}
			}
		}
	}
}

func TestIsWonExactlyWhenAllSafeCellsRevealed(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		b, err := NewBoard(6, 7, r)
		require.NoError(t, err)

		safe := make([]Coordinate, 0, 36)
		for row := range 6 {
			for col := range 6 {
				if content, _ := b.ContentAt(Coordinate{row, col}); !content.IsMine() {
					safe = append(safe, Coordinate{row, col})
				}
			}
		}
		r.Shuffle(len(safe), func(i, j int) { safe[i], safe[j] = safe[j], safe[i] })

		for _, c := range safe {
			assert.Equal(t, b.RevealedCount() == 36-7, b.IsWon())
			outcome, err := b.Reveal(c)
			require.NoError(t, err)
			require.Equal(t, Safe, outcome)
		}
		assert.Equal(t, 36-7, b.RevealedCount())
		assert.True(t, b.IsWon())
		assert.False(t, b.IsLost())
	}
}

func TestOutOfBounds(t *testing.T) {
	for _, size := range []int{1, 2, 7} {
		b, err := NewBoard(size, 0, rand.New(rand.NewPCG(1, 2)))
		require.NoError(t, err)

		for _, c := range []Coordinate{
			{-1, 0}, {size, 0}, {0, -1}, {0, size}, {size, size},
		} {
			_, err := b.Reveal(c)
			assert.ErrorIs(t, err, ErrOutOfBounds, "reveal %v", c)
			_, err = b.ContentAt(c)
			assert.ErrorIs(t, err, ErrOutOfBounds, "content at %v", c)
			assert.False(t, b.IsRevealed(c))
		}
		assert.Zero(t, b.RevealedCount())
	}
}

func TestRevealAll(t *testing.T) {
	b, err := NewBoardFromMines(3, []Coordinate{{1, 1}})
	require.NoError(t, err)

	outcome, err := b.Reveal(Coordinate{1, 1})
	require.NoError(t, err)
	require.Equal(t, HitMine, outcome)

	b.RevealAll()
	assert.Equal(t, 9, b.RevealedCount())
	for row := range 3 {
		for col := range 3 {
			assert.True(t, b.IsRevealed(Coordinate{row, col}))
		}
	}
}

func TestGridModes(t *testing.T) {
	b, err := NewBoardFromMines(2, []Coordinate{{0, 0}})
	require.NoError(t, err)

	_, err = b.Reveal(Coordinate{1, 1})
	require.NoError(t, err)

	assert.Equal(t, Grid{Unknown, Unknown, Unknown, 1}, b.Grid(Masked))
	assert.Equal(t, Grid{Mined, 1, 1, 1}, b.Grid(Exposed))
	assert.Equal(t, 1, b.RevealedCount())
}

func TestCellQueue(t *testing.T) {
	q := newCellQueue(5)
	_, ok := q.pop()
	assert.False(t, ok)

	q.add(3)
	q.add(0)
	i, ok := q.pop()
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	q.add(4)
	var got []int
	for i, ok := q.pop(); ok; i, ok = q.pop() {
		got = append(got, i)
	}
	assert.Equal(t, []int{0, 4}, got)
}
