package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/a-h/gugi/client"
	"github.com/a-h/gugi/models"
)

type StatusCommand struct {
	GugiURL    string `help:"The URL of the Gugi server." env:"GUGI_URL" default:"http://localhost:8001"`
	GugiAPIKey string `help:"The API key for the Gugi server." env:"GUGI_API_KEY" default:""`
	ClientName string `help:"Record a status check with this client name. Lists status checks if empty." default:""`
	Health     bool   `help:"Report database connectivity instead." default:"false"`
	Pretty     bool   `help:"Pretty print the JSON output." default:"true"`
}

func (c StatusCommand) Run(ctx context.Context) (err error) {
	gc := client.New(c.GugiURL, c.GugiAPIKey)

	var resp any
	switch {
	case c.Health:
		resp, err = gc.HealthDB(ctx)
	case c.ClientName != "":
		resp, err = gc.StatusPost(ctx, models.StatusCheckCreate{ClientName: c.ClientName})
	default:
		resp, err = gc.StatusList(ctx)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}
