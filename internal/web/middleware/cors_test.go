package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsOriginAllowed(t *testing.T) {
	allowed := buildOriginSet([]string{"https://studio.example.com", " ", ""})

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://studio.example.com", true},
		{"http://localhost:5173", true},
		{"https://localhost:8443", true},
		{"https://evil.example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isOriginAllowed(tt.origin, allowed); got != tt.want {
			t.Errorf("isOriginAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestCORSHeadersOnAllowedOrigin(t *testing.T) {
	handler := CORS([]string{"https://studio.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://studio.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://studio.example.com" {
		t.Errorf("expected origin echoed, got %q", got)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected handler to run, got %d", rec.Code)
	}
}

func TestCORSDisallowedOriginGetsNoHeader(t *testing.T) {
	handler := CORS(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow-origin header, got %q", got)
	}
}
