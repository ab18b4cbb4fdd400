package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rinchamnan16/younan24/internal/config"
)

func TestSettingsDefaultsFromConfig(t *testing.T) {
	h := NewSettingsHandler(config.StudioConfig{
		Name:    "YouNan",
		TitleKh: "យូណាន ថតរូប និងបោះពុម្ភ",
		TitleEn: "YouNan Photography and Printing",
	})

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var settings StudioSettings
	if err := json.NewDecoder(rec.Body).Decode(&settings); err != nil {
		t.Fatalf("failed to decode settings: %v", err)
	}
	if settings.Name != "YouNan" || settings.TitleEn == "" {
		t.Errorf("expected config defaults, got %+v", settings)
	}
}

func TestSettingsUpdate(t *testing.T) {
	h := NewSettingsHandler(config.StudioConfig{Name: "YouNan"})

	rec := httptest.NewRecorder()
	h.Update(rec, jsonRequest(t, http.MethodPut, "/settings", StudioSettings{
		Name:  "YouNan Studio",
		Phone: "012 345 678",
	}, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))
	var settings StudioSettings
	if err := json.NewDecoder(rec.Body).Decode(&settings); err != nil {
		t.Fatalf("failed to decode settings: %v", err)
	}
	if settings.Name != "YouNan Studio" || settings.Phone != "012 345 678" {
		t.Errorf("update should persist in memory, got %+v", settings)
	}
}

func TestSettingsUpdateRequiresName(t *testing.T) {
	h := NewSettingsHandler(config.StudioConfig{Name: "YouNan"})

	rec := httptest.NewRecorder()
	h.Update(rec, jsonRequest(t, http.MethodPut, "/settings", StudioSettings{Phone: "000"}, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a name, got %d", rec.Code)
	}
}
