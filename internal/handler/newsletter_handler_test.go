package handler

import (
	"net/http"
	"testing"
)

func TestSubscribeNewsletter(t *testing.T) {
	r, _ := setupTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/newsletter", map[string]string{
		"email": "Reader@Example.com",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["email"] != "reader@example.com" {
		t.Fatalf("expected normalized email in response")
	}
}

func TestSubscribeNewsletterDuplicate(t *testing.T) {
	r, _ := setupTestAPI(t)

	if w := doJSON(t, r, http.MethodPost, "/api/newsletter", map[string]string{"email": "reader@example.com"}, nil); w.Code != http.StatusOK {
		t.Fatalf("first subscribe failed: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/newsletter", map[string]string{"email": "READER@example.com"}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", w.Code)
	}
}

func TestSubscribeNewsletterInvalidEmail(t *testing.T) {
	r, _ := setupTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/newsletter", map[string]string{"email": "oops"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListSubscribersRequiresAuth(t *testing.T) {
	r, _ := setupTestAPI(t)

	w := doJSON(t, r, http.MethodGet, "/admin/api/subscribers", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	cookies := loginAdmin(t, r)
	w = doJSON(t, r, http.MethodGet, "/admin/api/subscribers", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with session, got %d", w.Code)
	}
}
