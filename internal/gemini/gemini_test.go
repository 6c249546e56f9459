package gemini

import (
	"context"
	"strings"
	"testing"

	"github.com/crayonbox/coloringbook/internal/providers"
)

func TestComplete_MissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	g := New()
	_, err := g.Complete(context.Background(), providers.Config{
		Model:  "gemini-1.5-flash",
		Prompt: "suggest themes",
	})
	if err == nil {
		t.Fatal("Expected error when GEMINI_API_KEY is not set")
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("Error does not name the missing variable: %v", err)
	}
}
