package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/gugi/db"
	"github.com/a-h/gugi/models"
	"github.com/a-h/respond"
)

// MaxResults caps the number of status checks returned.
const MaxResults = 1000

type Store interface {
	StatusCheckList(ctx context.Context, limit int) ([]db.StatusCheck, error)
}

// New creates the handler. A nil store means the database is not configured.
func New(log *slog.Logger, store Store) Handler {
	return Handler{
		log:   log,
		store: store,
	}
}

type Handler struct {
	log   *slog.Logger
	store Store
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respond.WithError(w, "Database not configured", http.StatusServiceUnavailable)
		return
	}

	checks, err := h.store.StatusCheckList(r.Context(), MaxResults)
	if err != nil {
		h.log.Error("status check list failed", slog.Any("error", err))
		respond.WithError(w, "status check list failed", http.StatusInternalServerError)
		return
	}

	resp := make([]models.StatusCheck, len(checks))
	for i, sc := range checks {
		resp[i] = models.StatusCheck{
			ID:         sc.ID,
			ClientName: sc.ClientName,
			Timestamp:  sc.Timestamp,
		}
	}
	respond.WithJSON(w, resp, http.StatusOK)
}
