package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/a-h/gugi/llm"
)

const (
	// Apology is returned when the upstream model fails.
	Apology = "I'm having trouble connecting to the AI service right now. Please try again later."
	// OfflineGreeting is returned when no client is configured and there is
	// nothing to echo.
	OfflineGreeting = "Hi!"

	DefaultTimeout = 30 * time.Second
)

var errEmptyReply = errors.New("empty reply")

// NewInvoker returns an Invoker. A non-positive timeout uses DefaultTimeout.
func NewInvoker(log *slog.Logger, client llm.Client, timeout time.Duration) Invoker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Invoker{
		log:     log,
		client:  client,
		timeout: timeout,
	}
}

// Invoker sends a conversation upstream. It always returns a non-empty
// string: the reply, or fallback text.
type Invoker struct {
	log     *slog.Logger
	client  llm.Client
	timeout time.Duration
}

// Invoke sends the last message of conv to model. Without a client it echoes
// that message instead.
func (inv Invoker) Invoke(ctx context.Context, conv Conversation, table ModelTable, model string) string {
	if inv.client == nil {
		inv.log.Warn("no LLM client configured, using fallback")
		if text := strings.TrimSpace(conv.Last()); text != "" {
			return text
		}
		return OfflineGreeting
	}

	text, err := inv.send(ctx, conv.Last(), table.Provider, model)
	if err != nil {
		inv.log.Error("LLM call failed",
			slog.String("provider", table.Provider),
			slog.String("model", model),
			slog.Any("error", err))
		return Apology
	}
	return text
}

func (inv Invoker) send(ctx context.Context, query, provider, model string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in LLM client: %v", r)
		}
	}()

	// The upstream call outlives a disconnected caller, but not the timeout.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), inv.timeout)
	defer cancel()

	session, err := inv.client.WithModel(provider, model)
	if err != nil {
		return "", err
	}
	inv.log.Debug("sending message to LLM", slog.String("provider", provider), slog.String("model", model), slog.Int("length", len(query)))
	reply, err := session.SendMessage(ctx, llm.UserMessage{Text: query})
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(reply)
	if text == "" {
		return "", errEmptyReply
	}
	return text, nil
}
