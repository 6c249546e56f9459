package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/crayonbox/coloringbook/internal/gemini"
	"github.com/crayonbox/coloringbook/internal/generation"
	"github.com/crayonbox/coloringbook/internal/models"
	"github.com/crayonbox/coloringbook/internal/ollama"
	"github.com/crayonbox/coloringbook/internal/providers"
	"github.com/crayonbox/coloringbook/internal/storage"
	"golang.org/x/sync/singleflight"
)

// DownloadDir is where generation runs land on disk.
const DownloadDir = "download_creation"

type Handler struct {
	sessionStore *storage.SessionStore
	generator    *generation.Service
	baseDir      string
	themeGroup   singleflight.Group
}

func NewWithBaseDir(baseDir string) *Handler {
	return &Handler{
		sessionStore: storage.New(),
		generator:    generation.NewService(baseDir),
		baseDir:      baseDir,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*models.GenerationSession, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// textProvider picks the completion backend used for theme
// suggestions. Image generation always runs on the session's OpenAI
// client; only the theme text can come from elsewhere.
func (h *Handler) textProvider(session *models.GenerationSession) (providers.Provider, string, error) {
	provider := session.Provider
	if provider == "" {
		provider = os.Getenv("THEME_PROVIDER")
	}
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		return session.Client, session.Model, nil
	case "gemini":
		model := session.Model
		if model == "" {
			model = os.Getenv("GEMINI_MODEL")
		}
		if model == "" {
			model = "gemini-1.5-flash"
		}
		return gemini.New(), model, nil
	case "ollama":
		model := session.Model
		if model == "" {
			model = os.Getenv("OLLAMA_MODEL")
		}
		if model == "" {
			model = "llama3"
		}
		return ollama.New(), model, nil
	default:
		return nil, "", fmt.Errorf("unknown provider: %s", provider)
	}
}
