package handler

import (
	"net/http"
	"testing"
)

func TestListGalleryImagesByCategory(t *testing.T) {
	r, _ := setupTestAPI(t)
	cookies := loginAdmin(t, r)

	seeds := []map[string]string{
		{"title": "奶牛放牧", "category": "livestock", "image_url": "/static/uploads/cows.jpg"},
		{"title": "包装车间", "category": "production", "image_url": "/static/uploads/line.jpg"},
	}
	for _, seed := range seeds {
		w := doJSON(t, r, http.MethodPost, "/admin/api/gallery", seed, cookies)
		if w.Code != http.StatusOK {
			t.Fatalf("seed %s failed: %d %s", seed["title"], w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/gallery?category=livestock", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	items := body["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 livestock item, got %d", len(items))
	}
	if _, ok := body["categories"].([]interface{}); !ok {
		t.Fatalf("expected categories list in response")
	}
}

func TestCreateGalleryImageInvalidCategory(t *testing.T) {
	r, _ := setupTestAPI(t)
	cookies := loginAdmin(t, r)

	w := doJSON(t, r, http.MethodPost, "/admin/api/gallery", map[string]string{
		"title":     "未知分类",
		"category":  "machinery",
		"image_url": "/static/uploads/x.jpg",
	}, cookies)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid category, got %d", w.Code)
	}
}

func TestLeadersOrderedWithCEOFirst(t *testing.T) {
	r, _ := setupTestAPI(t)
	cookies := loginAdmin(t, r)

	seeds := []map[string]interface{}{
		{"name": "王五", "position": "运营总监", "display_order": 1},
		{"name": "赵六", "position": "首席执行官", "is_ceo": true, "display_order": 5, "phone": "+86 138-0013-8000"},
	}
	for _, seed := range seeds {
		w := doJSON(t, r, http.MethodPost, "/admin/api/leaders", seed, cookies)
		if w.Code != http.StatusOK {
			t.Fatalf("seed %v failed: %d %s", seed["name"], w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/leaders", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	items := decodeBody(t, w)["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 leaders, got %d", len(items))
	}

	first := items[0].(map[string]interface{})
	if first["name"] != "赵六" {
		t.Fatalf("expected CEO first, got %v", first["name"])
	}
	if first["whatsapp_link"] != "https://wa.me/8613800138000" {
		t.Fatalf("expected derived whatsapp link, got %v", first["whatsapp_link"])
	}
}
