package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestReadyHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]CheckFunc
		wantStatus int
		wantHealth Status
	}{
		{
			name:       "no dependencies",
			checks:     nil,
			wantStatus: http.StatusOK,
			wantHealth: StatusHealthy,
		},
		{
			name: "all healthy",
			checks: map[string]CheckFunc{
				"catalogue": func(context.Context) error { return nil },
			},
			wantStatus: http.StatusOK,
			wantHealth: StatusHealthy,
		},
		{
			name: "one failing",
			checks: map[string]CheckFunc{
				"catalogue": func(context.Context) error { return nil },
				"redis":     func(context.Context) error { return errors.New("connection refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(nil, "v1.2.3")
			for name, check := range tt.checks {
				checker.AddCheck(name, check)
			}

			r := gin.New()
			r.GET("/health/ready", checker.ReadyHandler())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body HealthStatus
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Status != tt.wantHealth {
				t.Errorf("health = %q, want %q", body.Status, tt.wantHealth)
			}
			if body.Version != "v1.2.3" {
				t.Errorf("version = %q, want v1.2.3", body.Version)
			}
			if len(body.Checks) != len(tt.checks) {
				t.Errorf("checks = %d, want %d", len(body.Checks), len(tt.checks))
			}
		})
	}
}

func TestCheckReportsFailureDetail(t *testing.T) {
	checker := NewChecker(nil, "dev").AddCheck("redis", func(context.Context) error {
		return errors.New("timeout")
	})

	status := checker.Check(context.Background())

	got := status.Checks["redis"]
	if got.Status != StatusUnhealthy || got.Error != "timeout" {
		t.Errorf("redis check = %+v, want unhealthy with timeout", got)
	}
}

func TestLiveHandler(t *testing.T) {
	r := gin.New()
	r.GET("/health/live", NewChecker(nil, "dev").LiveHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
