package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rinchamnan16/younan24/internal/editor"
	"github.com/rinchamnan16/younan24/internal/generate"
	"github.com/rinchamnan16/younan24/internal/media"
)

// fakeProvider is a scripted generate.Provider for handler tests.
type fakeProvider struct {
	mu         sync.Mutex
	result     *generate.ImageResult
	err        error
	editCalls  int
	mergeCalls int
	lastPrompt string
	lastMerge  generate.MergeRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) EditImage(ctx context.Context, req generate.EditRequest) (*generate.ImageResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editCalls++
	f.lastPrompt = req.Prompt
	return f.result, f.err
}

func (f *fakeProvider) MergeImages(ctx context.Context, req generate.MergeRequest) (*generate.ImageResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mergeCalls++
	f.lastPrompt = req.StylePrompt
	f.lastMerge = req
	return f.result, f.err
}

func (f *fakeProvider) calls() (edit, merge int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editCalls, f.mergeCalls
}

// fakeVideoGenerator completes, fails, or blocks until its context ends.
type fakeVideoGenerator struct {
	result    *generate.VideoResult
	err       error
	block     bool
	started   chan struct{}
	startOnce sync.Once
}

func (f *fakeVideoGenerator) GenerateVideo(ctx context.Context, req generate.VideoRequest) (*generate.VideoResult, error) {
	if f.started != nil {
		f.startOnce.Do(func() { close(f.started) })
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.result, f.err
}

// newEditorEnv builds the in-memory state handlers operate on.
func newEditorEnv() (*editor.Manager, *media.BlobStore) {
	blobs := media.NewBlobStore()
	return editor.NewManager(blobs), blobs
}

// testPNG returns a tiny encoded PNG.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

// attachTestUpload ingests a PNG into the session.
func attachTestUpload(t *testing.T, s *editor.Session) {
	t.Helper()
	up, err := media.Ingest("test.png", "image/png", testPNG(t))
	if err != nil {
		t.Fatalf("failed to ingest test image: %v", err)
	}
	s.AttachUpload(up)
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonRequest builds a request carrying a JSON body and chi URL params.
func jsonRequest(t *testing.T, method, path string, body any, params map[string]string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if params != nil {
		req = requestWithChiParams(req, params)
	}
	return req
}

// multipartRequest builds a multipart request with image file fields and
// plain form values.
func multipartRequest(t *testing.T, method, path string, files map[string][]byte, fields map[string]string, params map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, data := range files {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, field+".png"))
		hdr.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if params != nil {
		req = requestWithChiParams(req, params)
	}
	return req
}

// decodeState decodes a session state response.
func decodeState(t *testing.T, rec *httptest.ResponseRecorder) editor.State {
	t.Helper()
	var st editor.State
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatalf("failed to decode state: %v", err)
	}
	return st
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
