package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rinchamnan16/younan24/internal/constants"
)

// JobStatus represents the status of an async job.
type JobStatus string

// JobStatus constants define the lifecycle states of an async job.
const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// VideoJob represents an async video generation job. Exactly one runs per
// editor session at a time.
type VideoJob struct {
	EventBroadcaster

	ID          string          `json:"id"`
	SessionID   string          `json:"session_id"`
	Prompt      string          `json:"prompt"`
	Status      JobStatus       `json:"status"`
	Error       string          `json:"error,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Result      *VideoJobResult `json:"result,omitempty"`
}

// VideoJobResult points at the stored video blob.
type VideoJobResult struct {
	BlobID   string `json:"blob_id"`
	MIMEType string `json:"mime_type"`
	Bytes    int    `json:"bytes"`
}

// GetStatus returns the current job status (implements SSEJob).
func (j *VideoJob) GetStatus() JobStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Status
}

// setStatus transitions the job, stamping completion time on terminal states.
// Terminal states are final: once a job completed, failed or was cancelled,
// later transitions are ignored.
func (j *VideoJob) setStatus(status JobStatus) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if isJobTerminal(j.Status) {
		return false
	}
	j.Status = status
	if isJobTerminal(status) {
		now := time.Now()
		j.CompletedAt = &now
	}
	return true
}

// Complete records the stored result and marks the job done.
func (j *VideoJob) Complete(result *VideoJobResult) {
	j.mu.Lock()
	if isJobTerminal(j.Status) {
		j.mu.Unlock()
		return
	}
	j.Result = result
	j.Status = JobStatusCompleted
	now := time.Now()
	j.CompletedAt = &now
	j.mu.Unlock()
	j.SendEvent(JobEvent{Type: "completed", Data: result})
}

// Fail records the error and marks the job failed.
func (j *VideoJob) Fail(errMsg string) {
	j.mu.Lock()
	if isJobTerminal(j.Status) {
		j.mu.Unlock()
		return
	}
	j.Error = errMsg
	j.Status = JobStatusFailed
	now := time.Now()
	j.CompletedAt = &now
	j.mu.Unlock()
	j.SendEvent(JobEvent{Type: "failed", Message: errMsg})
}

// Cancel cancels the video job. Jobs that already finished are left as-is.
func (j *VideoJob) Cancel() {
	if !j.setStatus(JobStatusCancelled) {
		return
	}
	j.EventBroadcaster.Cancel()
}

// VideoJobView is the JSON shape of a job, detached from its broadcaster.
type VideoJobView struct {
	ID          string          `json:"id"`
	SessionID   string          `json:"session_id"`
	Prompt      string          `json:"prompt"`
	Status      JobStatus       `json:"status"`
	Error       string          `json:"error,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Result      *VideoJobResult `json:"result,omitempty"`
}

// Snapshot returns a copy of the job safe for JSON encoding.
func (j *VideoJob) Snapshot() VideoJobView {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return VideoJobView{
		ID:          j.ID,
		SessionID:   j.SessionID,
		Prompt:      j.Prompt,
		Status:      j.Status,
		Error:       j.Error,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
		Result:      j.Result,
	}
}

// JobEvent represents an event from a job.
type JobEvent struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// EventBroadcaster provides listener management and event broadcasting for async jobs.
// Embed this in job structs to get AddListener, RemoveListener, and SendEvent methods.
type EventBroadcaster struct {
	cancel    context.CancelFunc
	listeners []chan JobEvent
	mu        sync.RWMutex
}

// AddListener adds an event listener.
func (b *EventBroadcaster) AddListener() chan JobEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan JobEvent, constants.EventChannelBuffer)
	b.listeners = append(b.listeners, ch)
	return ch
}

// RemoveListener removes an event listener.
func (b *EventBroadcaster) RemoveListener(ch chan JobEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, listener := range b.listeners {
		if listener == ch {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			close(ch)
			return
		}
	}
}

// SendEvent sends an event to all listeners.
func (b *EventBroadcaster) SendEvent(event JobEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, listener := range b.listeners {
		select {
		case listener <- event:
		default:
			// Listener buffer full, skip.
		}
	}
}

// Cancel cancels the job via context and sends a cancelled event.
func (b *EventBroadcaster) Cancel() {
	if b.cancel != nil {
		b.cancel()
	}
	b.SendEvent(JobEvent{Type: "cancelled", Message: "Job cancelled by user"})
}

// SSEJob is the interface required by streamSSEEvents to stream job events via SSE.
type SSEJob interface {
	AddListener() chan JobEvent
	RemoveListener(ch chan JobEvent)
	GetStatus() JobStatus
}

// VideoJobManager tracks async video jobs and enforces the one-job-per-
// session rule.
type VideoJobManager struct {
	jobs      map[string]*VideoJob
	bySession map[string]*VideoJob
	mu        sync.RWMutex
}

// NewVideoJobManager creates a new video job manager.
func NewVideoJobManager() *VideoJobManager {
	return &VideoJobManager{
		jobs:      make(map[string]*VideoJob),
		bySession: make(map[string]*VideoJob),
	}
}

// isActive reports whether a job is still pending or running.
func isActive(j *VideoJob) bool {
	if j == nil {
		return false
	}
	status := j.GetStatus()
	return status == JobStatusPending || status == JobStatusRunning
}

// CreateJob creates a new video job for a session. Returns nil if the
// session already has an active job.
func (m *VideoJobManager) CreateJob(sessionID, prompt string, cancel context.CancelFunc) *VideoJob {
	m.mu.Lock()
	defer m.mu.Unlock()

	if isActive(m.bySession[sessionID]) {
		return nil
	}

	job := &VideoJob{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Prompt:    prompt,
		Status:    JobStatusPending,
		StartedAt: time.Now(),
	}
	job.cancel = cancel

	m.jobs[job.ID] = job
	m.bySession[sessionID] = job
	return job
}

// GetJob retrieves a job by ID.
func (m *VideoJobManager) GetJob(id string) *VideoJob {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jobs[id]
}

// DeleteJob removes a job and frees its session slot.
func (m *VideoJobManager) DeleteJob(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job := m.jobs[id]
	delete(m.jobs, id)
	if job != nil && m.bySession[job.SessionID] == job {
		delete(m.bySession, job.SessionID)
	}
}

// ListJobs returns all jobs.
func (m *VideoJobManager) ListJobs() []*VideoJob {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jobs := make([]*VideoJob, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}
