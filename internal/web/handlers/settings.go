package handlers

import (
	"net/http"
	"sync"

	"github.com/rinchamnan16/younan24/internal/config"
)

// StudioSettings is the editable studio profile shown in the settings panel.
// Edits live in memory for the process lifetime; config provides defaults.
type StudioSettings struct {
	Name        string `json:"name"`
	TitleKh     string `json:"title_kh"`
	TitleEn     string `json:"title_en"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// SettingsHandler serves and updates the studio profile.
type SettingsHandler struct {
	mu       sync.RWMutex
	settings StudioSettings
}

// NewSettingsHandler creates a settings handler from config defaults.
func NewSettingsHandler(studio config.StudioConfig) *SettingsHandler {
	return &SettingsHandler{
		settings: StudioSettings{
			Name:        studio.Name,
			TitleKh:     studio.TitleKh,
			TitleEn:     studio.TitleEn,
			Description: studio.Description,
			Phone:       studio.Phone,
			Address:     studio.Address,
		},
	}
}

// Get returns the current studio profile.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	settings := h.settings
	h.mu.RUnlock()
	respondJSON(w, http.StatusOK, settings)
}

// Update replaces the studio profile.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var settings StudioSettings
	if err := decodeJSON(r, &settings); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if settings.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	h.mu.Lock()
	h.settings = settings
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, settings)
}
