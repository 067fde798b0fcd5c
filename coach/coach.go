// Package coach turns chat requests into a single reply from the upstream
// model, falling back to fixed text when the model is unavailable.
package coach

import (
	"context"
	"log/slog"
	"time"

	"github.com/a-h/gugi/llm"
	"github.com/a-h/gugi/models"
)

type Option func(*Coach)

// WithTimeout bounds each upstream call.
func WithTimeout(d time.Duration) Option {
	return func(c *Coach) {
		c.timeout = d
	}
}

// New creates a Coach. A nil client puts it in fallback-only mode.
func New(log *slog.Logger, client llm.Client, table ModelTable, opts ...Option) *Coach {
	c := &Coach{
		log:     log,
		client:  client,
		table:   table,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.invoker = NewInvoker(log, client, c.timeout)
	return c
}

type Coach struct {
	log     *slog.Logger
	client  llm.Client
	table   ModelTable
	timeout time.Duration
	invoker Invoker
}

// Live reports whether an upstream client is configured.
func (c *Coach) Live() bool {
	return c.client != nil
}

// Reply answers one chat request. It never fails; upstream problems are
// logged and answered with fallback text.
func (c *Coach) Reply(ctx context.Context, req models.ChatPostRequest) models.ChatPostResponse {
	model := c.table.Normalize(req.Model)
	conv := Assemble(req)
	c.log.Info("chat request",
		slog.String("mode", string(req.Mode)),
		slog.String("language", req.Language),
		slog.String("model", model),
		slog.Int("messages", len(conv)))
	return models.ChatPostResponse{
		Text: c.invoker.Invoke(ctx, conv, c.table, model),
	}
}
