// Package media handles the image plumbing around the editor: turning an
// uploaded file into the representations the rest of the system needs,
// serving transient blobs to the UI, and compositing final exports.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ValidationError reports a rejected upload. It is surfaced to the user
// directly and never reaches the generation service.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Upload is a fully ingested image: raw bytes for local processing, base64
// for transmission to the generation service, and the probed natural
// dimensions for the preview surface.
type Upload struct {
	Name        string
	MIMEType    string
	Data        []byte
	Base64      string
	Width       int
	Height      int
	AspectRatio string // e.g. "1920 / 1080", consumed as a CSS aspect-ratio value
}

// Ingest validates and decodes an uploaded file. Only image MIME types are
// accepted; anything else fails with a ValidationError before any further
// work happens.
func Ingest(name, mimeType string, data []byte) (*Upload, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, &ValidationError{Reason: "please upload a valid image (JPG or PNG)"}
	}
	if len(data) == 0 {
		return nil, &ValidationError{Reason: "uploaded file is empty"}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("could not read image: %v", err)}
	}

	return &Upload{
		Name:        name,
		MIMEType:    mimeType,
		Data:        data,
		Base64:      base64.StdEncoding.EncodeToString(data),
		Width:       cfg.Width,
		Height:      cfg.Height,
		AspectRatio: fmt.Sprintf("%d / %d", cfg.Width, cfg.Height),
	}, nil
}

// IngestBase64 ingests an image supplied as a base64 string, tolerating a
// data-URL header prefix ("data:image/png;base64,...").
func IngestBase64(name, mimeType, payload string) (*Upload, error) {
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid base64 image payload: %v", err)}
	}
	return Ingest(name, mimeType, data)
}
