package handlers

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// User is one row of the mock customer sheet. Like the news feed, this is
// demo data held in memory only.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UsersHandler serves the mock user admin sheet.
type UsersHandler struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewUsersHandler creates a users handler seeded with demo rows.
func NewUsersHandler() *UsersHandler {
	h := &UsersHandler{users: make(map[string]*User)}
	now := time.Now()
	for _, u := range []User{
		{Name: "Sokha", Phone: "012 345 678", Role: "admin"},
		{Name: "Dara", Phone: "098 765 432", Role: "staff"},
	} {
		u := u
		u.ID = uuid.NewString()
		u.CreatedAt = now
		h.users[u.ID] = &u
	}
	return h
}

// List returns every user sorted by name.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	users := make([]*User, 0, len(h.users))
	for _, u := range h.users {
		users = append(users, u)
	}
	h.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool {
		return users[i].Name < users[j].Name
	})
	respondJSON(w, http.StatusOK, users)
}

type userRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// Create adds a user row.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	user := &User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Phone:     req.Phone,
		Role:      req.Role,
		CreatedAt: time.Now(),
	}

	h.mu.Lock()
	h.users[user.ID] = user
	h.mu.Unlock()

	respondJSON(w, http.StatusCreated, user)
}

// Update edits a user row in place.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	h.mu.Lock()
	user := h.users[chi.URLParam(r, "id")]
	if user != nil {
		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Phone != "" {
			user.Phone = req.Phone
		}
		if req.Role != "" {
			user.Role = req.Role
		}
	}
	h.mu.Unlock()

	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Delete removes a user row.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.mu.Lock()
	_, ok := h.users[id]
	delete(h.users, id)
	h.mu.Unlock()

	if !ok {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
