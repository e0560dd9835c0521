package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		ping       pingerFunc
		wantStatus int
		wantHealth string
		wantDB     string
	}{
		{
			name:       "database answers",
			ping:       func(context.Context) error { return nil },
			wantStatus: http.StatusOK,
			wantHealth: "ok",
			wantDB:     "ok",
		},
		{
			name:       "database down",
			ping:       func(context.Context) error { return errors.New("disk I/O error") },
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "degraded",
			wantDB:     "error",
		},
		{
			name: "database too slow",
			ping: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "degraded",
			wantDB:     "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Check(tt.ping, 50*time.Millisecond)(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var h Health
			if err := json.Unmarshal(w.Body.Bytes(), &h); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if h.Status != tt.wantHealth || h.DB.Status != tt.wantDB {
				t.Errorf("health = %+v, want status %q db %q", h, tt.wantHealth, tt.wantDB)
			}
		})
	}
}
