// Package llm binds a provider and model to a chat session and sends single
// text queries to it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

var (
	ErrUnknownProvider = errors.New("llm: unknown provider")
	ErrNoChoices       = errors.New("llm: no choices returned")
)

// Client binds a provider and model.
type Client interface {
	WithModel(provider, model string) (Session, error)
}

// Session sends one text query and returns one text reply.
type Session interface {
	SendMessage(ctx context.Context, msg UserMessage) (string, error)
}

// UserMessage is the outbound user turn.
type UserMessage struct {
	Text         string
	FileContents []FileContent
}

type FileContent struct {
	MIMEType string
	Data     []byte
}

func NewLangChain(systemMessage string) *LangChain {
	return &LangChain{
		systemMessage: systemMessage,
		providers:     make(map[string]llms.Model),
	}
}

// LangChain is a Client backed by langchaingo models, one per provider.
// Register all providers before serving; the provider map is not guarded.
type LangChain struct {
	systemMessage string
	providers     map[string]llms.Model
}

func (lc *LangChain) Register(provider string, model llms.Model) {
	lc.providers[provider] = model
}

func (lc *LangChain) Providers() (names []string) {
	for name := range lc.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (lc *LangChain) WithModel(provider, model string) (Session, error) {
	m, ok := lc.providers[provider]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownProvider, provider)
	}
	return langChainSession{
		llm:           m,
		model:         model,
		systemMessage: lc.systemMessage,
	}, nil
}

// Close releases any provider that holds resources.
func (lc *LangChain) Close() error {
	var errs []error
	for _, name := range lc.Providers() {
		if c, ok := lc.providers[name].(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("llm: failed to close %s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

type langChainSession struct {
	llm           llms.Model
	model         string
	systemMessage string
}

func (s langChainSession) SendMessage(ctx context.Context, msg UserMessage) (string, error) {
	human := llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextContent{Text: msg.Text}},
	}
	for _, fc := range msg.FileContents {
		human.Parts = append(human.Parts, llms.BinaryPart(fc.MIMEType, fc.Data))
	}
	var content []llms.MessageContent
	if strings.TrimSpace(s.systemMessage) != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, s.systemMessage))
	}
	content = append(content, human)

	var opts []llms.CallOption
	if s.model != "" {
		opts = append(opts, llms.WithModel(s.model))
	}
	resp, err := s.llm.GenerateContent(ctx, content, opts...)
	if err != nil {
		return "", fmt.Errorf("llm: failed to generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Content, nil
}
