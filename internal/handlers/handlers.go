package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/session"
)

var (
	ErrBadID          = errors.New("game id must be an int")
	ErrNotYourGame    = errors.New("game belongs to another player")
	ErrInternalServer = errors.New("internal server error")
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	return w.Write(payload)
}

func SendJSONOrLog(w http.ResponseWriter,
	logger *slog.Logger,
	v any,
) {
	_, err := SendJSON(w, v)
	if err != nil {
		logger.Error(
			"failed to send data",
			slog.Any("data", v),
			slog.Any("error", err),
		)
	}
}

func SendMessageOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	m string,
) {
	_, err := SendJSON(w, map[string]string{
		"message": m,
	})
	if err != nil {
		logger.Error(
			"failed to send message",
			slog.String("message", m),
			slog.Any("error", err),
		)
	}
}

func SendErrorOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	e error,
) {
	_, err := SendJSON(w, wrapError(e))
	if err != nil {
		logger.Error(
			"failed to send error message",
			slog.Any("sent error", e),
			slog.Any("error", err),
		)
	}
}

// StatusFor maps an error returned while serving a request to the HTTP status
// reported to the client.
func StatusFor(err error) int {
	var decodeErr schema.MultiError
	switch {
	case errors.As(err, &decodeErr),
		errors.Is(err, ErrBadID),
		errors.Is(err, ErrBadAuthBody),
		errors.Is(err, ErrBadPasswordTooLong),
		errors.Is(err, command.ErrMalformedInput),
		errors.Is(err, command.ErrUnknownCommand),
		errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrGameOver),
		errors.Is(err, repository.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, ErrNotYourGame),
		errors.Is(err, ErrBadCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// sendError writes the status for err and an error body. Server-side failures
// are logged and hidden from the client.
func sendError(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	status := StatusFor(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status == http.StatusInternalServerError {
		logger.Error(msg, slog.Any("error", err))
		SendErrorOrLog(w, logger, ErrInternalServer)
		return
	}
	SendErrorOrLog(w, logger, err)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, ErrBadID
	}
	return id, nil
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
