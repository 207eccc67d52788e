package handlers

import (
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/session"
)

type GameHandler struct {
	logger *slog.Logger
	games  *session.Manager
	cfg    *config.Game
	ws     *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	games *session.Manager,
	cfg *config.Game,
	ws *config.WebSocket,
) *GameHandler {
	handler := &GameHandler{
		logger: logger,
		games:  games,
		cfg:    cfg,
		ws:     ws,
	}

	return handler
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query(), g.cfg)
	if err != nil {
		sendError(w, g.logger, "unable to parse game params", err)
		return
	}

	params := session.Params{Size: dto.Size, MineCount: dto.MineCount}
	if claims, loggedIn := middleware.PlayerClaims(r.Context()); loggedIn {
		g.logger.Debug("creating player game", slog.Int64("playerID", claims.PlayerID))
		params.PlayerID = &claims.PlayerID
		params.Username = &claims.Username
	} else {
		g.logger.Debug("creating anonymous game")
	}

	s, err := g.games.Create(params)
	if err != nil {
		sendError(w, g.logger, "unable to create game", err)
		return
	}

	SendJSONOrLog(w, g.logger, NewGameSessionDTO(s))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, g.logger, "", err)
		return
	}

	s, err := g.games.Get(id)
	if err != nil {
		sendError(w, g.logger, "unable to fetch game", err)
		return
	}

	SendJSONOrLog(w, g.logger, NewGameSessionDTO(s))
}

// owned looks up the game in the request path and checks that the caller may
// play it. Games started anonymously can be played by anyone who knows the id.
func (g GameHandler) owned(r *http.Request) (*session.Session, error) {
	id, err := parseID(r)
	if err != nil {
		return nil, err
	}
	s, err := g.games.Get(id)
	if err != nil {
		return nil, err
	}
	if s.PlayerID == nil {
		return s, nil
	}
	claims, loggedIn := middleware.PlayerClaims(r.Context())
	if !loggedIn || claims.PlayerID != *s.PlayerID {
		return nil, ErrNotYourGame
	}
	return s, nil
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, "", err)
		return
	}

	s, err := g.owned(r)
	if err != nil {
		sendError(w, g.logger, "unable to fetch game", err)
		return
	}

	if _, _, err := g.games.Reveal(r.Context(), s.ID, pos); err != nil {
		sendError(w, g.logger, "unable to reveal cell", err)
		return
	}

	SendJSONOrLog(w, g.logger, NewGameSessionDTO(s))
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, err := g.owned(r)
	if err != nil {
		sendError(w, g.logger, "unable to fetch game", err)
		return
	}

	if _, err := g.games.Forfeit(r.Context(), s.ID); err != nil {
		sendError(w, g.logger, "unable to forfeit game", err)
		return
	}

	SendJSONOrLog(w, g.logger, NewGameSessionDTO(s))
}
