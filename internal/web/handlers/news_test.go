package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func listPosts(t *testing.T, h *NewsHandler) []NewsPost {
	t.Helper()
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/news", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var posts []NewsPost
	if err := json.NewDecoder(rec.Body).Decode(&posts); err != nil {
		t.Fatalf("failed to decode posts: %v", err)
	}
	return posts
}

func TestNewsSeededFeed(t *testing.T) {
	h := NewNewsHandler()
	posts := listPosts(t, h)
	if len(posts) == 0 {
		t.Fatal("expected seeded posts")
	}
	for i := 1; i < len(posts); i++ {
		if posts[i].CreatedAt.After(posts[i-1].CreatedAt) {
			t.Error("posts should be sorted newest first")
		}
	}
}

func TestNewsCreateLikeComment(t *testing.T) {
	h := NewNewsHandler()

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/news", map[string]string{"author": "Sokha", "body": "hello"}, nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var post NewsPost
	if err := json.NewDecoder(rec.Body).Decode(&post); err != nil {
		t.Fatalf("failed to decode post: %v", err)
	}

	rec = httptest.NewRecorder()
	h.Like(rec, jsonRequest(t, http.MethodPost, "/like", nil, map[string]string{"id": post.ID}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Comment(rec, jsonRequest(t, http.MethodPost, "/comments", map[string]string{"author": "Dara", "body": "nice"}, map[string]string{"id": post.ID}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	for _, p := range listPosts(t, h) {
		if p.ID == post.ID {
			if p.Likes != 1 {
				t.Errorf("expected 1 like, got %d", p.Likes)
			}
			if len(p.Comments) != 1 || p.Comments[0].Body != "nice" {
				t.Errorf("expected the comment to be attached, got %+v", p.Comments)
			}
			return
		}
	}
	t.Fatal("created post not found in the feed")
}

func TestNewsValidation(t *testing.T) {
	h := NewNewsHandler()

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(t, http.MethodPost, "/news", map[string]string{"author": "x"}, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Like(rec, jsonRequest(t, http.MethodPost, "/like", nil, map[string]string{"id": "missing"}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown post, got %d", rec.Code)
	}
}

func TestNewsDelete(t *testing.T) {
	h := NewNewsHandler()
	posts := listPosts(t, h)

	rec := httptest.NewRecorder()
	h.Delete(rec, jsonRequest(t, http.MethodDelete, "/news", nil, map[string]string{"id": posts[0].ID}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(listPosts(t, h)) != len(posts)-1 {
		t.Error("expected one fewer post after delete")
	}
}
