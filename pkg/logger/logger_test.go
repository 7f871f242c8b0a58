package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf)

	log.WithFields(map[string]interface{}{
		"symbol": "NVDA",
		"rank":   1,
	}).Info("ranked")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}

	if entry["symbol"] != "NVDA" {
		t.Errorf("Expected symbol field NVDA, got %v", entry["symbol"])
	}
	if entry["message"] != "ranked" {
		t.Errorf("Expected message 'ranked', got %v", entry["message"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf)

	log.WithError(errors.New("upstream unreachable")).Error("fetch failed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}

	if entry["error"] != "upstream unreachable" {
		t.Errorf("Expected error field, got %v", entry["error"])
	}
}
