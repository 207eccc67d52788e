package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/session"
)

// ConnectWS upgrades to a websocket on which the client sends batches of
// newline separated commands. Each batch is answered with the game state, or
// with an error naming the first command that failed; commands after it in
// the same batch are dropped.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, err := g.owned(r)
	if err != nil {
		sendError(w, g.logger, "unable to fetch game", err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}

	defer c.Close()
	c.SetReadLimit(g.ws.ReadLimit)

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		g.logger.Debug("ws message", slog.Int64("id", s.ID), slog.String("text", string(message)))

		var reply any
		if err := g.runBatch(r.Context(), s, string(message)); err != nil {
			if StatusFor(err) == http.StatusInternalServerError {
				g.logger.Error("unable to process command", slog.Any("error", err))
				err = ErrInternalServer
			}
			reply = wrapError(err)
		} else {
			reply = NewGameSessionDTO(s)
		}

		if err := c.WriteJSON(reply); err != nil {
			g.logger.Error("unable to write json", slog.Any("error", err))
			break
		}
	}
}

func (g GameHandler) runBatch(ctx context.Context, s *session.Session, batch string) error {
	for _, line := range command.Lines(batch) {
		cmd, err := command.Parse(line)
		if err != nil {
			return err
		}
		switch cmd.Kind {
		case command.Reveal:
			_, _, err = g.games.Reveal(ctx, s.ID, cmd.At)
		case command.Forfeit:
			_, err = g.games.Forfeit(ctx, s.ID)
		case command.Show:
		}
		if err != nil {
			return err
		}
	}
	return nil
}
