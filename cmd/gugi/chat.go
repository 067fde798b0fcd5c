package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/gugi/client"
	"github.com/a-h/gugi/models"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type ChatCommand struct {
	GugiURL    string `help:"The URL of the Gugi server." env:"GUGI_URL" default:"http://localhost:8001"`
	GugiAPIKey string `help:"The API key for the Gugi server." env:"GUGI_API_KEY" default:""`
	Language   string `help:"The language to chat in." enum:"de,en,pl" default:"de"`
	Model      string `help:"The model to request." default:""`
	Summary    string `help:"A YAML or JSON file containing the user's health summary." type:"existingfile" optional:""`
	Greet      bool   `help:"Ask for a greeting before the first message." default:"true" negatable:""`
}

func (c ChatCommand) Run(ctx context.Context) (err error) {
	summary, err := readSummary(c.Summary)
	if err != nil {
		return err
	}
	s := session{
		client:   client.New(c.GugiURL, c.GugiAPIKey),
		language: c.Language,
		model:    c.Model,
		summary:  summary,
	}
	p := tea.NewProgram(newModel(ctx, s, c.Greet))
	if _, err = p.Run(); err != nil {
		return err
	}
	return nil
}

// session holds the request fields that stay the same for every message.
type session struct {
	client   client.Client
	language string
	model    string
	summary  map[string]any
}

type replyMsg struct {
	text string
}

func (s session) send(ctx context.Context, mode models.ChatMode, history []models.ChatMessage) tea.Cmd {
	req := models.ChatPostRequest{
		Mode:     mode,
		Language: s.language,
		Model:    s.model,
		Summary:  s.summary,
		Messages: history,
	}
	return func() tea.Msg {
		resp, err := s.client.ChatPost(ctx, req)
		if err != nil {
			return err
		}
		return replyMsg{text: resp.Text}
	}
}

// Dracula color scheme.
var (
	Background  = lipgloss.Color("#282a36")
	CurrentLine = lipgloss.Color("#44475a")
	Comment     = lipgloss.Color("#6272a4")
	Cyan        = lipgloss.Color("#8be9fd")
	Green       = lipgloss.Color("#50fa7b")
	Pink        = lipgloss.Color("#ff79c6")
	Purple      = lipgloss.Color("#bd93f9")
	Red         = lipgloss.Color("#ff5555")
)

var headerStyle = lipgloss.NewStyle().Background(CurrentLine).Foreground(Purple).Bold(true).Margin(2).Padding(1).PaddingTop(0)

var header = `
  ____  _   _  ____ ___ 
 / ___|| | | |/ ___|_ _|
| |  _ | | | | |  _ | | 
| |_| || |_| | |_| || | 
 \____| \___/ \____|___|
`

var errorStyle = lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Red)

var pendingStyle = lipgloss.NewStyle().Margin(1).MarginBottom(0).Foreground(Comment)

type model struct {
	viewport viewport.Model
	textarea textarea.Model
	err      error
	ctx      context.Context

	session session
	history []models.ChatMessage
	greet   bool
	waiting bool
}

func newModel(ctx context.Context, s session, greet bool) model {
	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 280

	ta.SetHeight(3)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.SetContent(headerStyle.Render(header))

	ta.KeyMap.InsertNewline.SetEnabled(false)

	return model{
		ctx:      ctx,
		textarea: ta,
		viewport: vp,
		session:  s,
		greet:    greet,
		waiting:  greet,
	}
}

func (m model) Init() tea.Cmd {
	if m.greet {
		return tea.Batch(textarea.Blink, m.session.send(m.ctx, models.ChatModeGreeting, nil))
	}
	return textarea.Blink
}

var roleToStyle = map[models.ChatMessageRole]lipgloss.Style{
	models.ChatMessageRoleSystem:    lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).MaxWidth(90).Background(Background).Foreground(Green),
	models.ChatMessageRoleUser:      lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Pink),
	models.ChatMessageRoleAssistant: lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Cyan),
}

var roleToIcon = map[models.ChatMessageRole]string{
	models.ChatMessageRoleSystem:    "🤖",
	models.ChatMessageRoleUser:      "🙂",
	models.ChatMessageRoleAssistant: "🌱",
}

func formatMessage(msg models.ChatMessage) string {
	style, ok := roleToStyle[msg.Role]
	if !ok {
		return msg.Content
	}
	icon, ok := roleToIcon[msg.Role]
	if !ok {
		icon = "🤷"
	}
	wrapped := wordwrap.String(strings.TrimSpace(icon+" "+msg.Content), 80)
	return style.Render(wrapped)
}

func (m model) render() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(header))
	sb.WriteString("\n")
	for _, cm := range m.history {
		sb.WriteString(formatMessage(cm))
		sb.WriteString("\n")
	}
	if m.waiting {
		sb.WriteString(pendingStyle.Render("Gugi is typing..."))
		sb.WriteString("\n")
	}
	if m.err != nil {
		sb.WriteString(errorStyle.Render(wordwrap.String(m.err.Error(), 80)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m model) refresh() model {
	m.viewport.SetContent(m.render())
	m.viewport.GotoBottom()
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case error:
		m.err = msg
		m.waiting = false
		return m.refresh(), nil
	case replyMsg:
		m.err = nil
		m.waiting = false
		m.history = append(m.history, models.ChatMessage{
			Role:    models.ChatMessageRoleAssistant,
			Content: msg.text,
		})
		return m.refresh(), nil
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 3
		m.textarea.SetWidth(msg.Width)
		return m.refresh(), nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			v := strings.TrimSpace(m.textarea.Value())
			if v == "" || m.waiting {
				return m, nil
			}
			m.textarea.Reset()
			m.history = append(m.history, models.ChatMessage{
				Role:    models.ChatMessageRoleUser,
				Content: v,
			})
			m.waiting = true
			m.err = nil
			cmd := m.session.send(m.ctx, models.ChatModeChat, m.history)
			return m.refresh(), cmd
		default:
			// Send all other keypresses to the textarea.
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}

	case cursor.BlinkMsg:
		// Textarea should also process cursor blinks.
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m model) View() string {
	return fmt.Sprintf("%s\n\n%s",
		m.viewport.View(),
		m.textarea.View(),
	) + "\n\n"
}
