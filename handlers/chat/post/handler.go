package post

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/gugi/auth"
	"github.com/a-h/gugi/models"
	"github.com/a-h/respond"
)

// Coach produces a reply for every request. It has no error path.
type Coach interface {
	Reply(ctx context.Context, req models.ChatPostRequest) models.ChatPostResponse
}

func New(log *slog.Logger, coach Coach) Handler {
	return Handler{
		log:   log,
		coach: coach,
	}
}

type Handler struct {
	log   *slog.Logger
	coach Coach
}

const maxBodyBytes = 1 << 20

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req models.ChatPostRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil {
		h.log.Error("failed to decode body", slog.Any("error", err))
		respond.WithError(w, "failed to decode body", http.StatusBadRequest)
		return
	}
	if err = req.Validate(); err != nil {
		h.log.Warn("invalid chat request", slog.Any("error", err))
		respond.WithError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if user, ok := auth.GetUser(r); ok {
		h.log.Info("chat", slog.String("user", user))
	}

	resp := h.coach.Reply(r.Context(), req)
	respond.WithJSON(w, resp, http.StatusOK)
}
