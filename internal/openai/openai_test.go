package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/crayonbox/coloringbook/internal/providers"
)

func TestNew_EmptyKey(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()
	t.Setenv("OPENAI_BASE_URL", server.URL)

	client, err := New("")
	if !errors.Is(err, ErrEmptyAPIKey) {
		t.Errorf("Expected ErrEmptyAPIKey, got %v", err)
	}
	if client != nil {
		t.Error("Expected nil client for empty key")
	}
	if calls.Load() != 0 {
		t.Errorf("Expected no requests for empty key, got %d", calls.Load())
	}
}

func TestVerify(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gpt-3.5-turbo","object":"model"}]}`))
	}))
	defer server.Close()
	t.Setenv("OPENAI_BASE_URL", server.URL)

	client, err := New("sk-test")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := client.Verify(context.Background()); err != nil {
		t.Errorf("Verify returned error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected exactly one models request, got %d", calls.Load())
	}
}

func TestVerify_InvalidKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()
	t.Setenv("OPENAI_BASE_URL", server.URL)

	client, err := New("sk-bogus")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := client.Verify(context.Background()); !errors.Is(err, ErrInvalidAPIKey) {
		t.Errorf("Expected ErrInvalidAPIKey, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		var req struct {
			Model string `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		gotModel = req.Model
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"- Dinosaurs\n- Space"}}]}`))
	}))
	defer server.Close()
	t.Setenv("OPENAI_BASE_URL", server.URL)

	client, err := New("sk-test")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	content, err := client.Complete(context.Background(), providers.Config{
		Model:       "gpt-3.5-turbo",
		Temperature: 0.7,
		Prompt:      "suggest themes",
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != "- Dinosaurs\n- Space" {
		t.Errorf("Unexpected content %q", content)
	}
	if gotModel != "gpt-3.5-turbo" {
		t.Errorf("Expected model gpt-3.5-turbo, got %q", gotModel)
	}
}

func TestGenerateImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1700000000,"data":[{"url":"https://images.example.com/out.png"}]}`))
	}))
	defer server.Close()
	t.Setenv("OPENAI_BASE_URL", server.URL)

	client, err := New("sk-test")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	url, err := client.GenerateImage(context.Background(), "a drawing of a cat")
	if err != nil {
		t.Fatalf("GenerateImage returned error: %v", err)
	}
	if url != "https://images.example.com/out.png" {
		t.Errorf("Unexpected URL %q", url)
	}
}

func TestImageModel_EnvOverride(t *testing.T) {
	t.Setenv("OPENAI_IMAGE_MODEL", "dall-e-3")

	if got := ImageModel(); got != "dall-e-3" {
		t.Errorf("Expected dall-e-3, got %q", got)
	}
}
