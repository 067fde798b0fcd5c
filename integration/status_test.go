package integration

import (
	"context"
	"testing"

	"github.com/a-h/gugi/client"
	"github.com/a-h/gugi/models"
	"github.com/google/uuid"
)

func TestStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()
	c := client.New(baseURL, "")

	health, err := c.HealthDB(ctx)
	if err != nil {
		t.Skipf("database not available: %v", err)
	}
	if !health.Connected {
		t.Fatal("expected the database to be connected")
	}

	clientName := "integration-" + uuid.NewString()
	created, err := c.StatusPost(ctx, models.StatusCheckCreate{ClientName: clientName})
	if err != nil {
		t.Fatalf("failed to post status check: %v", err)
	}
	if created.ClientName != clientName {
		t.Errorf("expected client name %q, got %q", clientName, created.ClientName)
	}

	list, err := c.StatusList(ctx)
	if err != nil {
		t.Fatalf("failed to list status checks: %v", err)
	}
	for _, sc := range list {
		if sc.ID == created.ID {
			return
		}
	}
	t.Errorf("status check %s was not listed", created.ID)
}
