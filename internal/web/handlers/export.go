package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rinchamnan16/younan24/internal/constants"
	"github.com/rinchamnan16/younan24/internal/editor"
	"github.com/rinchamnan16/younan24/internal/media"
)

// ExportHandler renders the final download: the session's current image with
// its preview filter baked in at full resolution.
type ExportHandler struct {
	sessions *editor.Manager
	blobs    *media.BlobStore
	prefix   string
}

// NewExportHandler creates a new export handler. prefix becomes the first
// segment of the download filename.
func NewExportHandler(sessions *editor.Manager, blobs *media.BlobStore, prefix string) *ExportHandler {
	return &ExportHandler{
		sessions: sessions,
		blobs:    blobs,
		prefix:   prefix,
	}
}

type exportRequest struct {
	Format string `json:"format"`
}

// Export encodes the session's current image for download. The format field
// accepts "jpg" (default) or "png".
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(chi.URLParam(r, "id"))
	if s == nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	var req exportRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	format := media.ExportFormat(req.Format)
	if format == "" {
		format = media.FormatJPEG
	}

	data, ok := h.currentImageData(s)
	if !ok {
		respondError(w, http.StatusBadRequest, "nothing to export")
		return
	}

	filter := editor.EffectiveFilter(s.Adjustments())
	result, err := media.Export(data, filter.BrightnessPercent, filter.ContrastPercent, format, h.prefix)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", result.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func (h *ExportHandler) currentImageData(s *editor.Session) ([]byte, bool) {
	if id := s.GeneratedBlobID(); id != "" {
		if b := h.blobs.Get(id); b != nil {
			return b.Data, true
		}
	}
	if up := s.Upload(); up != nil {
		return up.Data, true
	}
	return nil, false
}

// BlobsHandler serves stored image and video blobs by id.
type BlobsHandler struct {
	blobs *media.BlobStore
}

// NewBlobsHandler creates a new blobs handler.
func NewBlobsHandler(blobs *media.BlobStore) *BlobsHandler {
	return &BlobsHandler{blobs: blobs}
}

// Get streams one blob with its stored MIME type.
func (h *BlobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	blob := h.blobs.Get(chi.URLParam(r, "id"))
	if blob == nil {
		respondError(w, http.StatusNotFound, "blob not found")
		return
	}
	w.Header().Set("Content-Type", blob.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(blob.Data)
}

// Preview streams a downsized thumbnail of an image blob.
func (h *BlobsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	blob := h.blobs.Get(chi.URLParam(r, "id"))
	if blob == nil {
		respondError(w, http.StatusNotFound, "blob not found")
		return
	}

	resized, err := media.Resize(blob.Data, maxPreviewSize(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(resized)))
	w.WriteHeader(http.StatusOK)
	w.Write(resized)
}

func maxPreviewSize(r *http.Request) int {
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= constants.MaxPreviewSize {
			return n
		}
	}
	return constants.MaxPreviewSize
}
