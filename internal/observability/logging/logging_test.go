package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestValidateAndExtractRequestID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		keepsIn bool
	}{
		{"valid id", "req-123_abc", true},
		{"empty", "", false},
		{"has spaces", "bad id", false},
		{"injection", "x\ny", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateAndExtractRequestID(tt.input)
			if tt.keepsIn && got != tt.input {
				t.Errorf("got %q, want %q", got, tt.input)
			}
			if !tt.keepsIn && (got == tt.input || got == "") {
				t.Errorf("got %q, want a generated id", got)
			}
		})
	}
}

func TestNewLogger_AddsServiceAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, HandlerConfig{
		Service:       ServiceInfo{Name: "slot-scheduler", Version: "v1"},
		Environment:   EnvProd,
		DefaultModule: Module("slot-scheduler"),
	})

	ctx := WithRequestID(context.Background(), "req-1")
	logger.InfoContext(ctx, "hello", slog.String("user_id", "u1"))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	for key, want := range map[string]string{
		"service":    "slot-scheduler",
		"version":    "v1",
		"env":        "prod",
		"module":     "slot-scheduler",
		"request_id": "req-1",
		"user_id":    "u1",
	} {
		if line[key] != want {
			t.Errorf("%s = %v, want %q", key, line[key], want)
		}
	}
}

func TestNewLogger_ProdSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, HandlerConfig{Environment: EnvProd})
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written in prod: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, ok := ParseLevel("warn"); !ok || lvl != slog.LevelWarn {
		t.Errorf("ParseLevel(warn) = %v, %v", lvl, ok)
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Error("ParseLevel(loud) ok = true")
	}
}
