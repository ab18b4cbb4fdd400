package editor

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rinchamnan16/younan24/internal/catalog"
	"github.com/rinchamnan16/younan24/internal/media"
)

// Session is one user's editing state. All mutation goes through methods
// holding the session lock; nothing mutates a session from the background.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu           sync.Mutex
	backgroundID string
	clothing     catalog.ClothingSelection
	prompt       string
	adjustments  Adjustments

	upload          *media.Upload
	uploadBlobID    string
	generatedBlobID string

	errorMsg   string
	successMsg string

	blobs *media.BlobStore
}

// State is the JSON snapshot the UI renders.
type State struct {
	ID              string      `json:"id"`
	BackgroundID    string      `json:"background_id"`
	UniformID       string      `json:"uniform_id"`
	StateUniformID  string      `json:"state_uniform_id"`
	Prompt          string      `json:"prompt"`
	Adjustments     Adjustments `json:"adjustments"`
	Filter          Filter      `json:"filter"`
	HasUpload       bool        `json:"has_upload"`
	AspectRatio     string      `json:"aspect_ratio,omitempty"`
	UploadBlobID    string      `json:"upload_blob_id,omitempty"`
	GeneratedBlobID string      `json:"generated_blob_id,omitempty"`
	Error           string      `json:"error,omitempty"`
	Success         string      `json:"success,omitempty"`
}

func newSession(blobs *media.BlobStore) *Session {
	s := &Session{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now(),
		backgroundID: catalog.DefaultBackgroundID,
		adjustments:  DefaultAdjustments(),
		blobs:        blobs,
	}
	s.prompt = catalog.ComposePrompt(s.backgroundID, s.clothing)
	return s
}

// SetBackground changes the background selection and recomposes the prompt,
// overwriting any manual prompt edit (last selection wins).
func (s *Session) SetBackground(id string) error {
	if _, ok := catalog.Background(id); !ok {
		return fmt.Errorf("unknown background %q", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backgroundID = id
	s.recomposeLocked()
	return nil
}

// SelectUniform picks an office uniform. Any active state uniform selection
// is displaced by construction of the clothing union.
func (s *Session) SelectUniform(id string) error {
	if _, ok := catalog.Uniform(id); !ok {
		return fmt.Errorf("unknown uniform %q", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clothing = catalog.SelectUniform(id)
	s.recomposeLocked()
	return nil
}

// SelectStateUniform picks a state uniform, displacing any office uniform.
func (s *Session) SelectStateUniform(id string) error {
	if _, ok := catalog.StateUniform(id); !ok {
		return fmt.Errorf("unknown state uniform %q", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clothing = catalog.SelectStateUniform(id)
	s.recomposeLocked()
	return nil
}

func (s *Session) recomposeLocked() {
	s.prompt = catalog.ComposePrompt(s.backgroundID, s.clothing)
}

// OverridePrompt replaces the composed instruction with user-written text.
// The next selection change recomposes and overwrites it again; manual edits
// are not merged with recomputation.
func (s *Session) OverridePrompt(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt = text
}

// Prompt returns the current instruction text.
func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt
}

// SetAdjustments replaces the adjustment record.
func (s *Session) SetAdjustments(a Adjustments) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjustments = a
}

// AutoAdjust applies the auto preset on top of the current record.
func (s *Session) AutoAdjust() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjustments = AutoAdjustments(s.adjustments)
}

// ResetAdjustments restores the exact baseline.
func (s *Session) ResetAdjustments() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjustments = DefaultAdjustments()
}

// AttachUpload replaces the session's source image. The previous upload and
// any generated result are released from the blob store; adjustments and
// messages reset so a stale preview filter never stacks onto a new photo.
func (s *Session) AttachUpload(up *media.Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs.Release(s.uploadBlobID, s.generatedBlobID)
	s.generatedBlobID = ""

	s.upload = up
	s.uploadBlobID = s.blobs.Put(up.MIMEType, up.Data).ID
	s.adjustments = DefaultAdjustments()
	s.errorMsg = ""
	s.successMsg = ""
}

// Upload returns the current source image, or nil before the first upload.
func (s *Session) Upload() *media.Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upload
}

// SetGenerated stores a freshly generated image as the session result,
// releasing the superseded one, resetting adjustments, and recording the
// success message (clearing any error).
func (s *Session) SetGenerated(mimeType string, data []byte, successMsg string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs.Release(s.generatedBlobID)
	s.generatedBlobID = s.blobs.Put(mimeType, data).ID
	s.adjustments = DefaultAdjustments()
	s.successMsg = successMsg
	s.errorMsg = ""
	return s.generatedBlobID
}

// GeneratedBlobID returns the blob id of the latest generated image, or "".
func (s *Session) GeneratedBlobID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generatedBlobID
}

// Fail records an error message, clearing any success message. Exactly one
// of the two is ever set.
func (s *Session) Fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorMsg = msg
	s.successMsg = ""
}

// ClearMessages drops both messages; generation handlers call this before
// starting a new request.
func (s *Session) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorMsg = ""
	s.successMsg = ""
}

// Adjustments returns a copy of the current adjustment record.
func (s *Session) Adjustments() Adjustments {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustments
}

// Snapshot renders the session as the state the UI consumes.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		ID:              s.ID,
		BackgroundID:    s.backgroundID,
		UniformID:       s.clothing.UniformID(),
		StateUniformID:  s.clothing.StateUniformID(),
		Prompt:          s.prompt,
		Adjustments:     s.adjustments,
		Filter:          EffectiveFilter(s.adjustments),
		HasUpload:       s.upload != nil,
		UploadBlobID:    s.uploadBlobID,
		GeneratedBlobID: s.generatedBlobID,
		Error:           s.errorMsg,
		Success:         s.successMsg,
	}
	if s.upload != nil {
		st.AspectRatio = s.upload.AspectRatio
	}
	return st
}

// release drops every blob the session owns.
func (s *Session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs.Release(s.uploadBlobID, s.generatedBlobID)
	s.uploadBlobID = ""
	s.generatedBlobID = ""
	s.upload = nil
}

// Manager tracks live editor sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	blobs    *media.BlobStore
}

// NewManager creates a session manager backed by the given blob store.
func NewManager(blobs *media.BlobStore) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		blobs:    blobs,
	}
}

// Create starts a fresh session with catalog defaults.
func (m *Manager) Create() *Session {
	s := newSession(m.blobs)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session for id, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Delete ends a session and releases every blob it owns.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	s := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if s != nil {
		s.release()
	}
}
