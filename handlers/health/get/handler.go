package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/gugi/models"
	"github.com/a-h/respond"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// New creates the database health handler. A nil pinger means the database
// is not configured.
func New(log *slog.Logger, pinger Pinger) Handler {
	return Handler{
		log:     log,
		pinger:  pinger,
		timeout: 2 * time.Second,
	}
}

type Handler struct {
	log     *slog.Logger
	pinger  Pinger
	timeout time.Duration
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.pinger == nil {
		respond.WithError(w, "Database not configured", http.StatusServiceUnavailable)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	if err := h.pinger.Ping(ctx); err != nil {
		h.log.Error("database ping failed", slog.Any("error", err))
		respond.WithError(w, "Database ping failed", http.StatusServiceUnavailable)
		return
	}
	respond.WithJSON(w, models.DBHealthResponse{Connected: true}, http.StatusOK)
}
