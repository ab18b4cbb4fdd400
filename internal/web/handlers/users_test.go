package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func listUsers(t *testing.T, h *UsersHandler) []User {
	t.Helper()
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var users []User
	if err := json.NewDecoder(rec.Body).Decode(&users); err != nil {
		t.Fatalf("failed to decode users: %v", err)
	}
	return users
}

func TestUsersCRUD(t *testing.T) {
	h := NewUsersHandler()
	initial := len(listUsers(t, h))

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/users", map[string]string{"name": "Vanna", "phone": "011 222 333", "role": "staff"}, nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var user User
	if err := json.NewDecoder(rec.Body).Decode(&user); err != nil {
		t.Fatalf("failed to decode user: %v", err)
	}

	rec = httptest.NewRecorder()
	h.Update(rec, jsonRequest(t, http.MethodPut, "/users", map[string]string{"role": "admin"}, map[string]string{"id": user.ID}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var updated User
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode user: %v", err)
	}
	if updated.Role != "admin" || updated.Name != "Vanna" {
		t.Errorf("partial update should keep untouched fields, got %+v", updated)
	}

	rec = httptest.NewRecorder()
	h.Delete(rec, jsonRequest(t, http.MethodDelete, "/users", nil, map[string]string{"id": user.ID}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(listUsers(t, h)) != initial {
		t.Error("expected user count back to the seeded rows")
	}
}

func TestUsersValidation(t *testing.T) {
	h := NewUsersHandler()

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/users", map[string]string{"phone": "000"}, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a name, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Update(rec, jsonRequest(t, http.MethodPut, "/users", map[string]string{"name": "x"}, map[string]string{"id": "missing"}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", rec.Code)
	}
}
