package handler

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func doUpload(t *testing.T, r http.Handler, body *bytes.Buffer, contentType string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/admin/api/uploads", body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadImage(t *testing.T) {
	r, _ := setupTestAPI(t)
	cookies := loginAdmin(t, r)

	body, contentType := buildMultipartImage(t, "image", "cow.png", pngBytes(t, 12, 8))
	w := doUpload(t, r, body, contentType, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeBody(t, w)
	url, _ := resp["url"].(string)
	if !strings.HasPrefix(url, "/static/uploads/") {
		t.Fatalf("expected managed url, got %q", url)
	}
	if resp["width"] != float64(12) || resp["height"] != float64(8) {
		t.Fatalf("expected dimensions 12x8, got %vx%v", resp["width"], resp["height"])
	}
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	r, _ := setupTestAPI(t)
	cookies := loginAdmin(t, r)

	body, contentType := buildMultipartImage(t, "image", "notes.txt", []byte("plain text, not an image"))
	w := doUpload(t, r, body, contentType, cookies)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUploadImageRejectsOversize(t *testing.T) {
	r, _ := setupTestAPI(t)
	cookies := loginAdmin(t, r)

	// PNG 头加填充，超出 5MB 上限
	payload := append(pngBytes(t, 1, 1), bytes.Repeat([]byte{0}, 6<<20)...)
	body, contentType := buildMultipartImage(t, "image", "huge.png", payload)
	w := doUpload(t, r, body, contentType, cookies)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversize upload, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUploadImageMissingFile(t *testing.T) {
	r, _ := setupTestAPI(t)
	cookies := loginAdmin(t, r)

	w := doJSON(t, r, http.MethodPost, "/admin/api/uploads", nil, cookies)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d", w.Code)
	}
}
