package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

// Recorder stores the outcome of finished games.
type Recorder interface {
	CreateRecord(ctx context.Context, params repository.CreateRecordParams) error
}

type Params struct {
	Size      int
	MineCount int
	PlayerID  *int64
	Username  *string
}

type Session struct {
	ID        int64
	PlayerID  *int64
	Username  *string
	StartedAt time.Time
	Game      *Game

	lastActive time.Time // guarded by Manager.mu
}

// Manager keeps the games in progress in memory. The random source is shared
// by every game it creates and is only used under mu.
type Manager struct {
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time

	mu       sync.Mutex
	rnd      mines.Source
	sessions map[int64]*Session
	nextID   int64
}

// NewManager returns a manager drawing mine layouts from rnd. recorder may be
// nil, in which case finished games are not stored.
func NewManager(logger *slog.Logger, rnd mines.Source, recorder Recorder) *Manager {
	return &Manager{
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
		rnd:      rnd,
		sessions: make(map[int64]*Session),
	}
}

func (m *Manager) Create(params Params) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	game, err := New(params.Size, params.MineCount, m.rnd)
	if err != nil {
		return nil, err
	}

	m.nextID++
	now := m.now().UTC()
	s := &Session{
		ID:         m.nextID,
		PlayerID:   params.PlayerID,
		Username:   params.Username,
		StartedAt:  now,
		Game:       game,
		lastActive: now,
	}
	m.sessions[s.ID] = s

	m.logger.Debug(
		"created game",
		slog.Int64("id", s.ID),
		slog.Int("size", params.Size),
		slog.Int("mineCount", params.MineCount),
	)
	return s, nil
}

func (m *Manager) Get(id int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.lastActive = m.now()
	return s, nil
}

func (m *Manager) Remove(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reveal digs at c in game id. When the move ends the game its outcome is
// recorded.
func (m *Manager) Reveal(ctx context.Context, id int64, c mines.Coordinate) (*Session, Status, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, Playing, err
	}
	status, err := s.Game.Reveal(c)
	if err != nil {
		return s, status, err
	}
	if status.Over() {
		m.finish(ctx, s)
	}
	return s, status, nil
}

func (m *Manager) Forfeit(ctx context.Context, id int64) (*Session, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.Game.Forfeit(); err != nil {
		return s, err
	}
	m.finish(ctx, s)
	return s, nil
}

func (m *Manager) finish(ctx context.Context, s *Session) {
	snap := s.Game.Snapshot()
	m.logger.Info(
		"game over",
		slog.Int64("id", s.ID),
		slog.String("status", snap.Status.String()),
		slog.Int("moves", snap.Moves),
		slog.Int("cleared", snap.Cleared),
	)
	if m.recorder == nil {
		return
	}
	err := m.recorder.CreateRecord(ctx, repository.CreateRecordParams{
		PlayerID:  s.PlayerID,
		Username:  s.Username,
		Size:      snap.Size,
		MineCount: snap.MineCount,
		Won:       snap.Status == Won,
		Forfeited: snap.Forfeited,
		Moves:     snap.Moves,
		Cleared:   snap.Cleared,
		EndedAt:   m.now().UTC(),
	})
	if err != nil {
		m.logger.Error(
			"unable to record finished game",
			slog.Int64("id", s.ID),
			slog.Any("error", err),
		)
	}
}

// Sweep drops games nobody has touched for ttl and returns how many were
// removed.
func (m *Manager) Sweep(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-ttl)
	removed := 0
	for id, s := range m.sessions {
		if s.lastActive.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls [Manager.Sweep] every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval, ttl time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Sweep(ttl); n > 0 {
				m.logger.Debug("swept idle games", slog.Int("removed", n))
			}
		}
	}
}
