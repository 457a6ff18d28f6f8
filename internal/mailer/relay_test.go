package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRelayDisabled(t *testing.T) {
	r := NewRelay("", "svc", "tpl")
	if r.Enabled() {
		t.Fatalf("expected relay without endpoint to be disabled")
	}
	if err := r.Forward(context.Background(), map[string]string{"name": "张三"}); err != nil {
		t.Fatalf("expected disabled relay to be a no-op, got %v", err)
	}
}

func TestRelayForward(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", req.Method)
		}
		if ct := req.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		body, _ := io.ReadAll(req.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := NewRelay(server.URL, "svc_1", "tpl_1")
	err := r.Forward(context.Background(), map[string]string{
		"name":    "张三",
		"email":   "zhangsan@example.com",
		"message": "想咨询合作事宜",
	})
	if err != nil {
		t.Fatalf("forward failed: %v", err)
	}

	if captured["service_id"] != "svc_1" || captured["template_id"] != "tpl_1" {
		t.Fatalf("unexpected payload: %+v", captured)
	}
	params, ok := captured["template_params"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected template_params object, got %+v", captured["template_params"])
	}
	if params["message"] != "想咨询合作事宜" {
		t.Fatalf("unexpected template params: %+v", params)
	}
}

func TestRelayForwardServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	r := NewRelay(server.URL, "svc", "tpl")
	if err := r.Forward(context.Background(), nil); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}
