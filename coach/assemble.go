package coach

import (
	"fmt"

	"github.com/a-h/gugi/models"
	"gopkg.in/yaml.v3"
)

// MaxHistory is the number of caller messages sent upstream in chat mode.
const MaxHistory = 12

// Conversation is the ordered list of messages sent upstream for one request.
type Conversation []models.ChatMessage

// Last returns the content of the final message, or "" if there is none.
func (c Conversation) Last() string {
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1].Content
}

// Assemble builds the conversation for a request: the system prompt, then the
// summary if present, then either the greeting instruction or the most recent
// MaxHistory messages. The request is not modified.
func Assemble(req models.ChatPostRequest) Conversation {
	lang := Language(req.Language)
	if lang == "" {
		lang = DefaultLanguage
	}

	conv := Conversation{
		{Role: models.ChatMessageRoleSystem, Content: SystemPrompt(lang)},
	}
	if len(req.Summary) > 0 {
		conv = append(conv, models.ChatMessage{
			Role:    models.ChatMessageRoleSystem,
			Content: "summary:\n" + renderSummary(req.Summary),
		})
	}

	if req.Mode == models.ChatModeGreeting {
		return append(conv, models.ChatMessage{
			Role:    models.ChatMessageRoleUser,
			Content: GreetingInstruction(lang),
		})
	}
	history := req.Messages
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	return append(conv, history...)
}

// renderSummary writes the summary as YAML. Map keys are sorted by both the
// YAML and fmt encoders, so the output is stable.
func renderSummary(summary map[string]any) string {
	b, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Sprintf("%v\n", summary)
	}
	return string(b)
}
