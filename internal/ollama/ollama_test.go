package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/crayonbox/coloringbook/internal/providers"
)

func TestComplete(t *testing.T) {
	var gotPath string
	var req struct {
		Model   string `json:"model"`
		Prompt  string `json:"prompt"`
		Stream  bool   `json:"stream"`
		Options struct {
			Temperature float64 `json:"temperature"`
		} `json:"options"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"response":"- Dinosaurs\n- Space"}`)
	}))
	defer server.Close()
	t.Setenv("OLLAMA_URL", server.URL)

	o := New()
	got, err := o.Complete(context.Background(), providers.Config{
		Model:       "llama3",
		Temperature: 0.7,
		Prompt:      "suggest themes",
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	if got != "- Dinosaurs\n- Space" {
		t.Errorf("Unexpected response %q", got)
	}
	if gotPath != "/api/generate" {
		t.Errorf("Unexpected path %q", gotPath)
	}
	if req.Model != "llama3" {
		t.Errorf("Model = %q, want %q", req.Model, "llama3")
	}
	if req.Prompt != "suggest themes" {
		t.Errorf("Prompt = %q, want %q", req.Prompt, "suggest themes")
	}
	if req.Stream {
		t.Error("Expected streaming to be disabled")
	}
	if req.Options.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", req.Options.Temperature)
	}
}

func TestComplete_HostFallback(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"response":"ok"}`)
	}))
	defer server.Close()

	// With OLLAMA_URL unset the client falls back to OLLAMA_HOST.
	t.Setenv("OLLAMA_URL", "")
	t.Setenv("OLLAMA_HOST", server.URL)

	o := New()
	got, err := o.Complete(context.Background(), providers.Config{Model: "llama3", Prompt: "hi"})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got != "ok" {
		t.Errorf("Unexpected response %q", got)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected one request via OLLAMA_HOST, got %d", calls.Load())
	}
}

func TestComplete_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprint(w, "model not found")
	}))
	defer server.Close()
	t.Setenv("OLLAMA_URL", server.URL)

	o := New()
	if _, err := o.Complete(context.Background(), providers.Config{Model: "llama3", Prompt: "hi"}); err == nil {
		t.Error("Expected error for non-200 response")
	}
}
