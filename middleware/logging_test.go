// ABOUTME: Tests for request logging middleware
// ABOUTME: Verifies path sanitization prevents log injection attacks

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSanitizePath_RemovesNewlines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "path with newline injection",
			input: "/api/v1/history\nHistory cleared by admin",
			want:  "/api/v1/historyHistory cleared by admin",
		},
		{
			name:  "path with carriage return",
			input: "/api/v1/levers\rmalicious",
			want:  "/api/v1/leversmalicious",
		},
		{
			name:  "path with CRLF",
			input: "/api/v1/levers\r\ninjected line",
			want:  "/api/v1/leversinjected line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizePath(tt.input)
			if got != tt.want {
				t.Errorf("sanitizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizePath_RemovesControlCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "path with tab",
			input: "/api/v1/levers\tvalue",
			want:  "/api/v1/leversvalue",
		},
		{
			name:  "path with null byte",
			input: "/api/v1/levers\x00value",
			want:  "/api/v1/leversvalue",
		},
		{
			name:  "path with bell character",
			input: "/api/v1/levers\x07value",
			want:  "/api/v1/leversvalue",
		},
		{
			name:  "path with escape sequence",
			input: "/api/v1/levers\x1b[31mred\x1b[0m",
			want:  "/api/v1/levers[31mred[0m",
		},
		{
			name:  "path with DEL character",
			input: "/api/v1/levers\x7fvalue",
			want:  "/api/v1/leversvalue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizePath(tt.input)
			if got != tt.want {
				t.Errorf("sanitizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizePath_PreservesValidCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "normal path",
			input: "/api/v1/simulate",
			want:  "/api/v1/simulate",
		},
		{
			name:  "path with query string chars",
			input: "/api/v1/simulate?market=MA&leads=10",
			want:  "/api/v1/simulate?market=MA&leads=10",
		},
		{
			name:  "path with URL encoded chars",
			input: "/api/v1/markets%2Fma",
			want:  "/api/v1/markets%2Fma",
		},
		{
			name:  "path with hyphenated id",
			input: "/api/v1/history/3f2c9a1e-0b7d-4e0a-9c55-2a8e6f1d4b90",
			want:  "/api/v1/history/3f2c9a1e-0b7d-4e0a-9c55-2a8e6f1d4b90",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizePath(tt.input)
			if got != tt.want {
				t.Errorf("sanitizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogRequest_SetsRequestIDHeader(t *testing.T) {
	handler := LogRequest(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/levers", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	requestID := rec.Header().Get("X-Request-ID")
	if requestID == "" {
		t.Error("X-Request-ID header should be set")
	}
	if len(requestID) != 16 { // 8 bytes = 16 hex chars
		t.Errorf("X-Request-ID length = %d, want 16", len(requestID))
	}
}

func TestLogRequest_CapturesStatusCode(t *testing.T) {
	handler := LogRequest(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/levers", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusCreated)
	}
}
