package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper/internal/repository"
)

type RecordStore interface {
	GetRecords(ctx context.Context, filter repository.RecordFilter) ([]repository.Record, error)
}

type Records struct {
	logger *slog.Logger
	store  RecordStore
}

func NewRecords(logger *slog.Logger, store RecordStore) *Records {
	return &Records{logger: logger, store: store}
}

func (h Records) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseRecordFilter(r.URL.Query())
	if err != nil {
		sendError(w, h.logger, "", err)
		return
	}

	records, err := h.store.GetRecords(r.Context(), filter)
	if err != nil {
		sendError(w, h.logger, "unable to fetch records", err)
		return
	}
	if records == nil {
		records = []repository.Record{}
	}

	SendJSONOrLog(w, h.logger, records)
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}
