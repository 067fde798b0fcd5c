package post

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/gugi/db"
	"github.com/a-h/gugi/models"
	"github.com/a-h/respond"
	"github.com/google/uuid"
)

type Store interface {
	StatusCheckPut(ctx context.Context, sc db.StatusCheck) error
}

// New creates the handler. A nil store means the database is not configured.
func New(log *slog.Logger, store Store) Handler {
	return Handler{
		log:   log,
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type Handler struct {
	log   *slog.Logger
	store Store
	now   func() time.Time
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respond.WithError(w, "Database not configured", http.StatusServiceUnavailable)
		return
	}

	var req models.StatusCheckCreate
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.log.Error("failed to decode body", slog.Any("error", err))
		respond.WithError(w, "failed to decode body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ClientName) == "" {
		respond.WithError(w, "client_name is required", http.StatusBadRequest)
		return
	}

	sc := db.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: req.ClientName,
		Timestamp:  h.now(),
	}
	if err = h.store.StatusCheckPut(r.Context(), sc); err != nil {
		h.log.Error("status check put failed", slog.Any("error", err))
		respond.WithError(w, "status check put failed", http.StatusInternalServerError)
		return
	}

	respond.WithJSON(w, models.StatusCheck{
		ID:         sc.ID,
		ClientName: sc.ClientName,
		Timestamp:  sc.Timestamp,
	}, http.StatusOK)
}
