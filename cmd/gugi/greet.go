package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/a-h/gugi/client"
	"github.com/a-h/gugi/models"
	"gopkg.in/yaml.v3"
)

type GreetCommand struct {
	GugiURL    string `help:"The URL of the Gugi server." env:"GUGI_URL" default:"http://localhost:8001"`
	GugiAPIKey string `help:"The API key for the Gugi server." env:"GUGI_API_KEY" default:""`
	Language   string `help:"The language of the greeting." enum:"de,en,pl" default:"de"`
	Model      string `help:"The model to request." default:""`
	Summary    string `help:"A YAML or JSON file containing the user's health summary." type:"existingfile" optional:""`
	Pretty     bool   `help:"Pretty print the JSON output." default:"true"`
}

func (c GreetCommand) Run(ctx context.Context) (err error) {
	summary, err := readSummary(c.Summary)
	if err != nil {
		return err
	}
	gc := client.New(c.GugiURL, c.GugiAPIKey)
	resp, err := gc.ChatPost(ctx, models.ChatPostRequest{
		Mode:     models.ChatModeGreeting,
		Language: c.Language,
		Model:    c.Model,
		Summary:  summary,
	})
	if err != nil {
		return fmt.Errorf("failed to get greeting: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}

// readSummary reads a summary map from a file. JSON documents are valid YAML,
// so both formats are accepted.
func readSummary(filename string) (summary map[string]any, err error) {
	if filename == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	if err = yaml.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse summary %s: %w", filename, err)
	}
	return summary, nil
}
