// Package session drives boards: it serializes access to each one, tracks
// whether the game is still being played and reports finished games.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrGameOver     = errors.New("game is over")
	ErrNotFound     = errors.New("game not found")
	ErrStillPlaying = errors.New("game is still being played")
)

type Status int

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Status) Over() bool {
	return s != Playing
}

// Game owns one board and makes every access to it go through a single lock.
type Game struct {
	mu        sync.Mutex
	board     *mines.Board
	status    Status
	moves     int
	cleared   int
	forfeited bool
}

func New(size, mineCount int, r mines.Source) (*Game, error) {
	board, err := mines.NewBoard(size, mineCount, r)
	if err != nil {
		return nil, err
	}
	return NewWithBoard(board), nil
}

func NewWithBoard(board *mines.Board) *Game {
	return &Game{board: board}
}

// Reveal digs at c. The move that ends the game returns the final status;
// every later call fails with [ErrGameOver]. After a loss the whole board is
// revealed.
func (g *Game) Reveal(c mines.Coordinate) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status.Over() {
		return g.status, ErrGameOver
	}

	outcome, err := g.board.Reveal(c)
	if err != nil {
		return g.status, err
	}
	g.moves++

	switch {
	case outcome == mines.HitMine:
		g.cleared = g.board.RevealedCount() - 1
		g.status = Lost
		g.board.RevealAll()
	case g.board.IsWon():
		g.cleared = g.board.RevealedCount()
		g.status = Won
	default:
		g.cleared = g.board.RevealedCount()
	}

	return g.status, nil
}

// Forfeit gives up the game and reveals the solution.
func (g *Game) Forfeit() (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status.Over() {
		return g.status, ErrGameOver
	}
	g.status = Lost
	g.forfeited = true
	g.board.RevealAll()
	return g.status, nil
}

func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

func (g *Game) InBounds(c mines.Coordinate) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.InBounds(c)
}

// Solution returns the board with every cell exposed. It fails with
// [ErrStillPlaying] until the game is over.
func (g *Game) Solution() (mines.Grid, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.status.Over() {
		return nil, ErrStillPlaying
	}
	return g.board.Grid(mines.Exposed), nil
}

type Snapshot struct {
	Size      int        `json:"size"`
	MineCount int        `json:"mine_count"`
	Status    Status     `json:"status"`
	Forfeited bool       `json:"forfeited"`
	Moves     int        `json:"moves"`
	Cleared   int        `json:"cleared"`
	Grid      mines.Grid `json:"grid"`
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Snapshot{
		Size:      g.board.Size(),
		MineCount: g.board.MineCount(),
		Status:    g.status,
		Forfeited: g.forfeited,
		Moves:     g.moves,
		Cleared:   g.cleared,
		Grid:      g.board.Grid(mines.Masked),
	}
}
