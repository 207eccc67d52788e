package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type NewGameDTO struct {
	Size      int `schema:"size"`
	MineCount int `schema:"mine_count"`
}

// ParseNewGameDTO reads the board configuration from a query, falling back to
// the configured defaults for absent keys.
func ParseNewGameDTO(src url.Values, cfg *config.Game) (NewGameDTO, error) {
	dto := NewGameDTO{
		Size:      cfg.DefaultSize,
		MineCount: cfg.DefaultMineCount,
	}
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, err
	}
	if dto.Size > cfg.MaxSize {
		return dto, fmt.Errorf(
			"%w: size %d exceeds %d", mines.ErrInvalidConfiguration, dto.Size, cfg.MaxSize,
		)
	}
	return dto, nil
}

func ParsePosition(src url.Values) (mines.Coordinate, error) {
	var pos mines.Coordinate
	err := decoder.Decode(&pos, src)
	return pos, err
}

type RecordsDTO struct {
	Username  *string `schema:"username"`
	Size      *int    `schema:"size"`
	MineCount *int    `schema:"mine_count"`
	Won       *bool   `schema:"won"`
	Limit     int     `schema:"limit"`
}

func ParseRecordFilter(src url.Values) (repository.RecordFilter, error) {
	var dto RecordsDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return repository.RecordFilter{}, err
	}
	return repository.RecordFilter(dto), nil
}

type GameSessionDTO struct {
	GameSessionID string  `json:"game_session_id"`
	Username      *string `json:"username,omitempty"`
	StartedAt     int64   `json:"started_at"`
	session.Snapshot
}

func NewGameSessionDTO(s *session.Session) *GameSessionDTO {
	return &GameSessionDTO{
		GameSessionID: strconv.FormatInt(s.ID, 10),
		Username:      s.Username,
		StartedAt:     s.StartedAt.UnixMilli(),
		Snapshot:      s.Game.Snapshot(),
	}
}
