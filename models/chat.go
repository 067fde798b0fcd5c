package models

import "fmt"

type ChatPostRequest struct {
	// Mode is greeting or chat. Empty means chat.
	Mode ChatMode `json:"mode,omitempty"`
	// Language is de, en or pl. Empty means de.
	Language string `json:"language,omitempty"`
	// Model is the upstream model requested by the caller. It is normalized
	// before use, so retired or unknown names are accepted.
	Model string `json:"model,omitempty"`
	// Summary is passed to the model verbatim as context.
	Summary map[string]any `json:"summary,omitempty"`
	// Messages is the conversation so far, only used in chat mode.
	Messages []ChatMessage `json:"messages,omitempty"`
}

type ChatMode string

const (
	ChatModeGreeting ChatMode = "greeting"
	ChatModeChat     ChatMode = "chat"
)

type ChatMessageRole string

const (
	ChatMessageRoleSystem    ChatMessageRole = "system"
	ChatMessageRoleUser      ChatMessageRole = "user"
	ChatMessageRoleAssistant ChatMessageRole = "assistant"
)

type ChatMessage struct {
	Role    ChatMessageRole `json:"role"`
	Content string          `json:"content"`
}

type ChatPostResponse struct {
	Text string `json:"text"`
}

var supportedLanguages = map[string]struct{}{
	"de": {},
	"en": {},
	"pl": {},
}

// Validate checks the enumerated fields. Absent fields are valid.
func (r ChatPostRequest) Validate() error {
	switch r.Mode {
	case "", ChatModeGreeting, ChatModeChat:
	default:
		return fmt.Errorf("invalid mode %q", r.Mode)
	}
	if r.Language != "" {
		if _, ok := supportedLanguages[r.Language]; !ok {
			return fmt.Errorf("invalid language %q", r.Language)
		}
	}
	for i, m := range r.Messages {
		switch m.Role {
		case ChatMessageRoleSystem, ChatMessageRoleUser, ChatMessageRoleAssistant:
		default:
			return fmt.Errorf("messages[%d]: invalid role %q", i, m.Role)
		}
	}
	return nil
}
