package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rinchamnan16/younan24/internal/media"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// MaxUploadSize caps multipart uploads at 32 MB, enough for any camera JPEG.
const MaxUploadSize = 32 << 20

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON parses the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// ingestFormImage reads one multipart file field and validates it as an image.
func ingestFormImage(r *http.Request, field string) (*media.Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, errors.New("missing file field " + field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("failed to read uploaded file")
	}

	mimeType := header.Header.Get("Content-Type")
	return media.Ingest(header.Filename, mimeType, data)
}

// respondIngestError maps ingestion failures to status codes: validation
// problems are the client's fault, everything else is ours.
func respondIngestError(w http.ResponseWriter, err error) {
	var ve *media.ValidationError
	if errors.As(err, &ve) {
		respondError(w, http.StatusBadRequest, ve.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
