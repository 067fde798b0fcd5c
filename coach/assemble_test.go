package coach

import (
	"fmt"
	"testing"

	"github.com/a-h/gugi/models"
	"github.com/google/go-cmp/cmp"
)

func userMessages(n int) (msgs []models.ChatMessage) {
	for i := range n {
		role := models.ChatMessageRoleUser
		if i%2 == 1 {
			role = models.ChatMessageRoleAssistant
		}
		msgs = append(msgs, models.ChatMessage{Role: role, Content: fmt.Sprintf("message %d", i)})
	}
	return msgs
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		name     string
		req      models.ChatPostRequest
		expected Conversation
	}{
		{
			name: "defaults to German chat with no history",
			req:  models.ChatPostRequest{},
			expected: Conversation{
				{Role: models.ChatMessageRoleSystem, Content: SystemPrompt(LanguageDE)},
			},
		},
		{
			name: "greeting without summary ends with the instruction",
			req:  models.ChatPostRequest{Mode: models.ChatModeGreeting, Language: "en"},
			expected: Conversation{
				{Role: models.ChatMessageRoleSystem, Content: SystemPrompt(LanguageEN)},
				{Role: models.ChatMessageRoleUser, Content: GreetingInstruction(LanguageEN)},
			},
		},
		{
			name: "greeting with summary puts the summary second",
			req: models.ChatPostRequest{
				Mode:     models.ChatModeGreeting,
				Language: "pl",
				Summary:  map[string]any{"water": "low", "sleep": "ok"},
			},
			expected: Conversation{
				{Role: models.ChatMessageRoleSystem, Content: SystemPrompt(LanguagePL)},
				{Role: models.ChatMessageRoleSystem, Content: "summary:\nsleep: ok\nwater: low\n"},
				{Role: models.ChatMessageRoleUser, Content: GreetingInstruction(LanguagePL)},
			},
		},
		{
			name: "greeting ignores messages",
			req: models.ChatPostRequest{
				Mode:     models.ChatModeGreeting,
				Messages: userMessages(3),
			},
			expected: Conversation{
				{Role: models.ChatMessageRoleSystem, Content: SystemPrompt(LanguageDE)},
				{Role: models.ChatMessageRoleUser, Content: GreetingInstruction(LanguageDE)},
			},
		},
		{
			name: "empty summary is not sent",
			req: models.ChatPostRequest{
				Language: "en",
				Summary:  map[string]any{},
				Messages: userMessages(1),
			},
			expected: Conversation{
				{Role: models.ChatMessageRoleSystem, Content: SystemPrompt(LanguageEN)},
				{Role: models.ChatMessageRoleUser, Content: "message 0"},
			},
		},
		{
			name: "chat history is sent verbatim",
			req: models.ChatPostRequest{
				Mode:     models.ChatModeChat,
				Language: "en",
				Summary:  map[string]any{"steps": 4200},
				Messages: []models.ChatMessage{
					{Role: models.ChatMessageRoleUser, Content: "  how am I doing?  "},
					{Role: models.ChatMessageRoleAssistant, Content: "Great!"},
					{Role: models.ChatMessageRoleUser, Content: "and water?"},
				},
			},
			expected: Conversation{
				{Role: models.ChatMessageRoleSystem, Content: SystemPrompt(LanguageEN)},
				{Role: models.ChatMessageRoleSystem, Content: "summary:\nsteps: 4200\n"},
				{Role: models.ChatMessageRoleUser, Content: "  how am I doing?  "},
				{Role: models.ChatMessageRoleAssistant, Content: "Great!"},
				{Role: models.ChatMessageRoleUser, Content: "and water?"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := Assemble(tt.req)
			if diff := cmp.Diff(tt.expected, actual); diff != "" {
				t.Errorf("unexpected conversation: %v", diff)
			}
		})
	}
}

func TestAssembleHistoryLimit(t *testing.T) {
	msgs := userMessages(15)
	req := models.ChatPostRequest{Mode: models.ChatModeChat, Messages: msgs}

	actual := Assemble(req)

	if len(actual) != 13 {
		t.Fatalf("expected 13 messages, got %d", len(actual))
	}
	if diff := cmp.Diff(msgs[3:], []models.ChatMessage(actual[1:])); diff != "" {
		t.Errorf("expected the 12 most recent messages in order: %v", diff)
	}
	if len(req.Messages) != 15 {
		t.Errorf("request messages were modified, got %d", len(req.Messages))
	}
}

func TestAssembleHistoryLimitBoundary(t *testing.T) {
	actual := Assemble(models.ChatPostRequest{Messages: userMessages(MaxHistory)})
	if len(actual) != MaxHistory+1 {
		t.Fatalf("expected %d messages, got %d", MaxHistory+1, len(actual))
	}
	if actual[1].Content != "message 0" {
		t.Errorf("expected the oldest message to be kept, got %q", actual[1].Content)
	}
}

func TestAssembleIsRepeatable(t *testing.T) {
	req := models.ChatPostRequest{
		Mode:     models.ChatModeChat,
		Language: "de",
		Summary: map[string]any{
			"sleep":  "ok",
			"water":  "low",
			"weight": map[string]any{"trend": "down", "kg": 71.5},
			"pills":  []any{"vitamin d", "magnesium"},
		},
		Messages: userMessages(20),
	}
	first := Assemble(req)
	for range 10 {
		if diff := cmp.Diff(first, Assemble(req)); diff != "" {
			t.Fatalf("expected identical output: %v", diff)
		}
	}
}

func TestConversationLast(t *testing.T) {
	if actual := (Conversation{}).Last(); actual != "" {
		t.Errorf("expected empty string, got %q", actual)
	}
	conv := Conversation{{Content: "a"}, {Content: "b"}}
	if actual := conv.Last(); actual != "b" {
		t.Errorf("expected %q, got %q", "b", actual)
	}
}
