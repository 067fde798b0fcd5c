package coach

import (
	"context"
	"testing"
	"time"

	"github.com/a-h/gugi/models"
)

func TestReplyWithoutClient(t *testing.T) {
	c := New(discard, nil, Gemini)
	if c.Live() {
		t.Fatal("expected fallback mode")
	}

	t.Run("greeting in German echoes the greeting instruction", func(t *testing.T) {
		resp := c.Reply(context.Background(), models.ChatPostRequest{
			Mode:     models.ChatModeGreeting,
			Language: "de",
			Summary:  map[string]any{"sleep": "ok", "water": "low"},
		})
		if resp.Text != GreetingInstruction(LanguageDE) {
			t.Errorf("expected %q, got %q", GreetingInstruction(LanguageDE), resp.Text)
		}
	})
	t.Run("a request with only a language still gets text", func(t *testing.T) {
		resp := c.Reply(context.Background(), models.ChatPostRequest{Language: "de"})
		if resp.Text == "" {
			t.Error("expected text")
		}
	})
}

func TestReplyWithClient(t *testing.T) {
	session := &stubSession{reply: "Try a short walk after lunch."}
	client := &stubClient{session: session}
	c := New(discard, client, Gemini, WithTimeout(time.Second))
	if !c.Live() {
		t.Fatal("expected live mode")
	}

	resp := c.Reply(context.Background(), models.ChatPostRequest{
		Language: "en",
		Model:    "gemini-1.5-flash",
		Messages: userMessages(15),
	})

	if resp.Text != "Try a short walk after lunch." {
		t.Errorf("unexpected reply %q", resp.Text)
	}
	if client.model != "gemini-2.0-flash" {
		t.Errorf("expected normalized model, got %q", client.model)
	}
	if session.sent.Text != "message 14" {
		t.Errorf("expected the most recent message to be sent, got %q", session.sent.Text)
	}
}
