package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rinchamnan16/younan24/internal/catalog"
	"github.com/rinchamnan16/younan24/internal/editor"
	"github.com/rinchamnan16/younan24/internal/generate"
	"github.com/rinchamnan16/younan24/internal/media"
)

// GenerateHandler runs the synchronous image generation endpoints: the
// prompt-driven edit and the one-click unblur.
type GenerateHandler struct {
	sessions *editor.Manager
	blobs    *media.BlobStore
	provider generate.Provider
	logger   zerolog.Logger
}

// NewGenerateHandler creates a new generate handler.
func NewGenerateHandler(sessions *editor.Manager, blobs *media.BlobStore, provider generate.Provider, logger zerolog.Logger) *GenerateHandler {
	return &GenerateHandler{
		sessions: sessions,
		blobs:    blobs,
		provider: provider,
		logger:   logger,
	}
}

// Generate edits the session's source photo with the current instruction
// text. An empty instruction is rejected before any provider call.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(chi.URLParam(r, "id"))
	if s == nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	up := s.Upload()
	if up == nil {
		respondError(w, http.StatusBadRequest, "no photo uploaded")
		return
	}

	prompt := strings.TrimSpace(s.Prompt())
	if prompt == "" {
		s.Fail("No edit selected. Pick a background or uniform first.")
		respondError(w, http.StatusBadRequest, generate.ErrEmptyPrompt.Error())
		return
	}

	h.run(w, r, s, prompt, generate.Payload{MIMEType: up.MIMEType, Data: up.Data}, "Photo generated successfully.")
}

// Unblur sharpens the session's current image with a fixed enhancement
// instruction. It prefers the latest generated result over the raw upload so
// repeated passes stack.
func (h *GenerateHandler) Unblur(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(chi.URLParam(r, "id"))
	if s == nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	payload, ok := h.currentImage(s)
	if !ok {
		respondError(w, http.StatusBadRequest, "no photo uploaded")
		return
	}

	h.run(w, r, s, catalog.UnblurPrompt, payload, "Photo sharpened successfully.")
}

// currentImage picks the image the next operation should work on.
func (h *GenerateHandler) currentImage(s *editor.Session) (generate.Payload, bool) {
	if id := s.GeneratedBlobID(); id != "" {
		if b := h.blobs.Get(id); b != nil {
			return generate.Payload{MIMEType: b.MIMEType, Data: b.Data}, true
		}
	}
	if up := s.Upload(); up != nil {
		return generate.Payload{MIMEType: up.MIMEType, Data: up.Data}, true
	}
	return generate.Payload{}, false
}

func (h *GenerateHandler) run(w http.ResponseWriter, r *http.Request, s *editor.Session, prompt string, image generate.Payload, successMsg string) {
	s.ClearMessages()

	res, err := h.provider.EditImage(r.Context(), generate.EditRequest{
		Image:  image,
		Prompt: prompt,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("session", s.ID).Str("provider", h.provider.Name()).Msg("image generation failed")
		s.Fail(err.Error())
		respondError(w, generationStatus(err), err.Error())
		return
	}

	s.SetGenerated(res.MIMEType, res.Data, successMsg)
	respondJSON(w, http.StatusOK, s.Snapshot())
}

// generationStatus maps the generation error taxonomy onto HTTP statuses.
func generationStatus(err error) int {
	var quota *generate.QuotaError
	switch {
	case errors.As(err, &quota):
		return http.StatusTooManyRequests
	case errors.Is(err, generate.ErrTimedOut):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
