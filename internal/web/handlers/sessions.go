package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rinchamnan16/younan24/internal/catalog"
	"github.com/rinchamnan16/younan24/internal/editor"
	"github.com/rinchamnan16/younan24/internal/media"
)

// SessionsHandler owns the editor session lifecycle and every selection
// endpoint that mutates session state.
type SessionsHandler struct {
	sessions *editor.Manager
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(sessions *editor.Manager) *SessionsHandler {
	return &SessionsHandler{sessions: sessions}
}

// session resolves the {id} URL parameter to a live session, writing a 404
// and returning nil when it is gone.
func (h *SessionsHandler) session(w http.ResponseWriter, r *http.Request) *editor.Session {
	id := chi.URLParam(r, "id")
	s := h.sessions.Get(id)
	if s == nil {
		respondError(w, http.StatusNotFound, "session not found")
	}
	return s
}

// Create starts a new editor session with catalog defaults.
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	respondJSON(w, http.StatusCreated, s.Snapshot())
}

// Get returns the current session state.
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	respondJSON(w, http.StatusOK, s.Snapshot())
}

// Delete ends a session and releases its stored images.
func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(chi.URLParam(r, "id"))
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type uploadRequest struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64, data-URL header tolerated
}

// UploadPhoto attaches a new source photo, displacing the previous one.
// Accepts either a multipart "photo" file or a JSON body carrying the image
// as base64 (matching clients that send data URLs straight from a canvas).
func (h *SessionsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}

	up, err := h.ingestUpload(w, r)
	if err != nil {
		respondIngestError(w, err)
		return
	}
	if up == nil {
		return
	}

	s.AttachUpload(up)
	respondJSON(w, http.StatusOK, s.Snapshot())
}

// ingestUpload extracts the photo from either upload shape. A nil, nil
// return means the response was already written.
func (h *SessionsHandler) ingestUpload(w http.ResponseWriter, r *http.Request) (*media.Upload, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req uploadRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, errInvalidRequestBody)
			return nil, nil
		}
		return media.IngestBase64(req.Name, req.MIMEType, req.Data)
	}

	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return nil, nil
	}
	return ingestFormImage(r, "photo")
}

type selectRequest struct {
	ID string `json:"id"`
}

// SetBackground changes the background preset. The prompt is recomposed,
// overwriting any manual edit.
func (h *SessionsHandler) SetBackground(w http.ResponseWriter, r *http.Request) {
	h.applySelection(w, r, func(s *editor.Session, id string) error {
		return s.SetBackground(id)
	})
}

// SetUniform changes the office uniform preset. Selecting one displaces any
// state uniform.
func (h *SessionsHandler) SetUniform(w http.ResponseWriter, r *http.Request) {
	h.applySelection(w, r, func(s *editor.Session, id string) error {
		return s.SelectUniform(id)
	})
}

// SetStateUniform changes the state uniform preset, displacing any office
// uniform.
func (h *SessionsHandler) SetStateUniform(w http.ResponseWriter, r *http.Request) {
	h.applySelection(w, r, func(s *editor.Session, id string) error {
		return s.SelectStateUniform(id)
	})
}

func (h *SessionsHandler) applySelection(w http.ResponseWriter, r *http.Request, apply func(*editor.Session, string) error) {
	s := h.session(w, r)
	if s == nil {
		return
	}

	var req selectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if err := apply(s, req.ID); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.Snapshot())
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

// SetPrompt replaces the composed instruction with user-written text. The
// next preset selection overwrites it again.
func (h *SessionsHandler) SetPrompt(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}

	var req promptRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	s.OverridePrompt(req.Prompt)
	respondJSON(w, http.StatusOK, s.Snapshot())
}

// SetAdjustments replaces the full adjustment record.
func (h *SessionsHandler) SetAdjustments(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}

	var adj editor.Adjustments
	if err := decodeJSON(r, &adj); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	s.SetAdjustments(adj)
	respondJSON(w, http.StatusOK, s.Snapshot())
}

// AutoAdjust applies the one-click enhancement preset.
func (h *SessionsHandler) AutoAdjust(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	s.AutoAdjust()
	respondJSON(w, http.StatusOK, s.Snapshot())
}

// ResetAdjustments restores the neutral baseline.
func (h *SessionsHandler) ResetAdjustments(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	s.ResetAdjustments()
	respondJSON(w, http.StatusOK, s.Snapshot())
}

// Catalog lists every preset group the UI offers.
func Catalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"backgrounds":    catalog.Backgrounds(),
		"uniforms":       catalog.Uniforms(),
		"state_uniforms": catalog.StateUniforms(),
	})
}
