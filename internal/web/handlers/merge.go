package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rinchamnan16/younan24/internal/generate"
	"github.com/rinchamnan16/younan24/internal/media"
)

// MergeHandler composites a subject photo into a scene photo.
type MergeHandler struct {
	blobs    *media.BlobStore
	provider generate.Provider
	logger   zerolog.Logger
}

// NewMergeHandler creates a new merge handler.
func NewMergeHandler(blobs *media.BlobStore, provider generate.Provider, logger zerolog.Logger) *MergeHandler {
	return &MergeHandler{
		blobs:    blobs,
		provider: provider,
		logger:   logger,
	}
}

// Merge takes "subject" and "scene" file fields plus an optional "style"
// prompt and "remove_background" toggle, and returns the merged image as a
// stored blob.
func (h *MergeHandler) Merge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	subject, err := ingestFormImage(r, "subject")
	if err != nil {
		respondIngestError(w, err)
		return
	}
	scene, err := ingestFormImage(r, "scene")
	if err != nil {
		respondIngestError(w, err)
		return
	}

	style := strings.TrimSpace(r.FormValue("style"))
	if style == "" {
		style = generate.DefaultMergeStyle
	}
	// Background removal is on unless the client explicitly opts out.
	removeBackground := r.FormValue("remove_background") != "false"

	res, err := h.provider.MergeImages(r.Context(), generate.MergeRequest{
		Subject:          generate.Payload{MIMEType: subject.MIMEType, Data: subject.Data},
		Scene:            generate.Payload{MIMEType: scene.MIMEType, Data: scene.Data},
		StylePrompt:      style,
		RemoveBackground: removeBackground,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("provider", h.provider.Name()).Msg("image merge failed")
		respondError(w, generationStatus(err), err.Error())
		return
	}

	blob := h.blobs.Put(res.MIMEType, res.Data)
	respondJSON(w, http.StatusOK, map[string]string{
		"blob_id":   blob.ID,
		"mime_type": blob.MIMEType,
	})
}
