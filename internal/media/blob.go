package media

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Blob is a transient, addressable binary artifact: an uploaded preview, a
// generated image, or a downloaded video. Blobs play the role a browser
// object URL plays in the UI, with explicit release instead of GC luck.
type Blob struct {
	ID        string
	MIMEType  string
	Data      []byte
	CreatedAt time.Time
}

// BlobStore is an in-memory registry of blobs served at /blobs/{id}.
// Ownership is scoped: callers that supersede or drop a blob must release it.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string]*Blob
}

// NewBlobStore creates an empty blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string]*Blob)}
}

// Put registers data under a fresh id and returns the stored blob.
func (s *BlobStore) Put(mimeType string, data []byte) *Blob {
	b := &Blob{
		ID:        uuid.NewString(),
		MIMEType:  mimeType,
		Data:      data,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.blobs[b.ID] = b
	s.mu.Unlock()
	return b
}

// Get returns the blob for id, or nil if it was never stored or has been
// released.
func (s *BlobStore) Get(id string) *Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blobs[id]
}

// Release drops a blob. Releasing an unknown id is a no-op so callers can
// release unconditionally when superseding.
func (s *BlobStore) Release(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.blobs, id)
	}
}

// Len reports the number of live blobs.
func (s *BlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
