package post

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/gugi/db"
	"github.com/a-h/gugi/models"
	"github.com/google/go-cmp/cmp"
)

type stubStore struct {
	err   error
	calls []db.StatusCheck
}

func (s *stubStore) StatusCheckPut(ctx context.Context, sc db.StatusCheck) error {
	s.calls = append(s.calls, sc)
	return s.err
}

var log = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestHandler(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("stores and returns the status check", func(t *testing.T) {
		store := &stubStore{}
		h := New(log, store)
		h.now = func() time.Time { return now }

		r := httptest.NewRequest(http.MethodPost, "/api/status", strings.NewReader(`{"client_name":"tester"}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		var actual models.StatusCheck
		if err := json.Unmarshal(w.Body.Bytes(), &actual); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if actual.ID == "" {
			t.Error("expected an ID")
		}
		expected := models.StatusCheck{ID: actual.ID, ClientName: "tester", Timestamp: now}
		if diff := cmp.Diff(expected, actual); diff != "" {
			t.Errorf("unexpected response: %v", diff)
		}
		if len(store.calls) != 1 || store.calls[0].ID != actual.ID {
			t.Errorf("expected the returned record to be stored, got %v", store.calls)
		}
	})

	tests := []struct {
		name           string
		store          Store
		body           string
		expectedStatus int
	}{
		{
			name:           "no database returns 503",
			store:          nil,
			body:           `{"client_name":"tester"}`,
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "invalid JSON returns 400",
			store:          &stubStore{},
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing client name returns 400",
			store:          &stubStore{},
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "store failures return 500",
			store:          &stubStore{err: errors.New("leader not found")},
			body:           `{"client_name":"tester"}`,
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(log, tt.store)
			r := httptest.NewRequest(http.MethodPost, "/api/status", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
