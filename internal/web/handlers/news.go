package handlers

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// NewsPost is one entry in the studio's demo news feed. The feed is an
// in-memory mock with no persistence.
type NewsPost struct {
	ID        string        `json:"id"`
	Author    string        `json:"author"`
	Body      string        `json:"body"`
	ImageURL  string        `json:"image_url,omitempty"`
	Likes     int           `json:"likes"`
	Comments  []NewsComment `json:"comments"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewsComment is one comment on a news post.
type NewsComment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewsHandler serves the mock news feed.
type NewsHandler struct {
	mu    sync.RWMutex
	posts map[string]*NewsPost
}

// NewNewsHandler creates a news handler seeded with a couple of demo posts.
func NewNewsHandler() *NewsHandler {
	h := &NewsHandler{posts: make(map[string]*NewsPost)}
	h.seed()
	return h
}

func (h *NewsHandler) seed() {
	now := time.Now()
	for i, p := range []NewsPost{
		{
			Author: "YouNan Studio",
			Body:   "New passport photo backgrounds are available. Drop by the studio or try them online.",
			Likes:  12,
		},
		{
			Author: "YouNan Studio",
			Body:   "We now print same-day 4x6 photo packages.",
			Likes:  5,
		},
	} {
		p := p
		p.ID = uuid.NewString()
		p.CreatedAt = now.Add(-time.Duration(i) * time.Hour)
		p.Comments = []NewsComment{}
		h.posts[p.ID] = &p
	}
}

// List returns every post, newest first.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	posts := make([]*NewsPost, 0, len(h.posts))
	for _, p := range h.posts {
		posts = append(posts, p)
	}
	h.mu.RUnlock()

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	respondJSON(w, http.StatusOK, posts)
}

type newsPostRequest struct {
	Author   string `json:"author"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

// Create adds a post to the feed.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req newsPostRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Body == "" {
		respondError(w, http.StatusBadRequest, "body is required")
		return
	}

	post := &NewsPost{
		ID:        uuid.NewString(),
		Author:    req.Author,
		Body:      req.Body,
		ImageURL:  req.ImageURL,
		Comments:  []NewsComment{},
		CreatedAt: time.Now(),
	}

	h.mu.Lock()
	h.posts[post.ID] = post
	h.mu.Unlock()

	respondJSON(w, http.StatusCreated, post)
}

// Like increments a post's like counter.
func (h *NewsHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	post := h.posts[chi.URLParam(r, "id")]
	if post != nil {
		post.Likes++
	}
	h.mu.Unlock()

	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

type newsCommentRequest struct {
	Author string `json:"author"`
	Body   string `json:"body"`
}

// Comment appends a comment to a post.
func (h *NewsHandler) Comment(w http.ResponseWriter, r *http.Request) {
	var req newsCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Body == "" {
		respondError(w, http.StatusBadRequest, "body is required")
		return
	}

	comment := NewsComment{
		ID:        uuid.NewString(),
		Author:    req.Author,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}

	h.mu.Lock()
	post := h.posts[chi.URLParam(r, "id")]
	if post != nil {
		post.Comments = append(post.Comments, comment)
	}
	h.mu.Unlock()

	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

// Delete removes a post.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.mu.Lock()
	_, ok := h.posts[id]
	delete(h.posts, id)
	h.mu.Unlock()

	if !ok {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
