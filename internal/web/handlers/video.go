package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rinchamnan16/younan24/internal/editor"
	"github.com/rinchamnan16/younan24/internal/generate"
	"github.com/rinchamnan16/younan24/internal/media"
)

// VideoHandler runs the async video generation endpoints. Generation takes
// minutes, so work happens in a background goroutine bounded by a deadline
// and clients follow progress over SSE.
type VideoHandler struct {
	sessions *editor.Manager
	blobs    *media.BlobStore
	video    generate.VideoGenerator
	jobs     *VideoJobManager
	deadline time.Duration
	logger   zerolog.Logger
}

// NewVideoHandler creates a new video handler.
func NewVideoHandler(sessions *editor.Manager, blobs *media.BlobStore, video generate.VideoGenerator, jobs *VideoJobManager, deadline time.Duration, logger zerolog.Logger) *VideoHandler {
	return &VideoHandler{
		sessions: sessions,
		blobs:    blobs,
		video:    video,
		jobs:     jobs,
		deadline: deadline,
		logger:   logger,
	}
}

type videoRequest struct {
	Prompt string `json:"prompt"`
}

// Start begins video generation from the session's current image. Only one
// job per session may be in flight; a second request gets a 409.
func (h *VideoHandler) Start(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(chi.URLParam(r, "id"))
	if s == nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	if h.video == nil {
		respondError(w, http.StatusServiceUnavailable, "video generation is not available with the configured provider")
		return
	}

	var req videoRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	payload, ok := h.currentImage(s)
	if !ok {
		respondError(w, http.StatusBadRequest, "no photo uploaded")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.deadline)
	job := h.jobs.CreateJob(s.ID, req.Prompt, cancel)
	if job == nil {
		cancel()
		respondError(w, http.StatusConflict, "a video is already being generated for this session")
		return
	}

	go h.generate(ctx, cancel, job, payload, req.Prompt)

	respondJSON(w, http.StatusAccepted, job.Snapshot())
}

func (h *VideoHandler) generate(ctx context.Context, cancel context.CancelFunc, job *VideoJob, image generate.Payload, prompt string) {
	defer cancel()

	job.setStatus(JobStatusRunning)
	job.SendEvent(JobEvent{Type: "progress", Message: "Video generation started"})

	res, err := h.video.GenerateVideo(ctx, generate.VideoRequest{
		Image:  image,
		Prompt: prompt,
	})
	if err != nil {
		// A user cancel surfaces as a context error; the job is already
		// in the cancelled state then.
		if job.GetStatus() == JobStatusCancelled {
			return
		}
		h.logger.Error().Err(err).Str("job", job.ID).Msg("video generation failed")
		job.Fail(err.Error())
		return
	}

	blob := h.blobs.Put(res.MIMEType, res.Data)
	job.Complete(&VideoJobResult{
		BlobID:   blob.ID,
		MIMEType: blob.MIMEType,
		Bytes:    len(blob.Data),
	})
}

// currentImage picks the frame the video animates from: the latest generated
// image when one exists, otherwise the raw upload.
func (h *VideoHandler) currentImage(s *editor.Session) (generate.Payload, bool) {
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

// Status returns the current state of a video job.
func (h *VideoHandler) Status(w http.ResponseWriter, r *http.Request) {
	job := h.jobs.GetJob(chi.URLParam(r, "jobId"))
	if job == nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	respondJSON(w, http.StatusOK, job.Snapshot())
}

// Events streams job progress over SSE until the job finishes or the client
// disconnects.
func (h *VideoHandler) Events(w http.ResponseWriter, r *http.Request) {
	streamSSEEvents(w, r,
		func(id string) SSEJob {
			if job := h.jobs.GetJob(id); job != nil {
				return job
			}
			return nil
		},
		func(j SSEJob) any {
			return j.(*VideoJob).Snapshot()
		})
}

// Cancel aborts a running video job.
func (h *VideoHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	job := h.jobs.GetJob(chi.URLParam(r, "jobId"))
	if job == nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	job.Cancel()
	respondJSON(w, http.StatusOK, job.Snapshot())
}
