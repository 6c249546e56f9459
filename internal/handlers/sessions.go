package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/crayonbox/coloringbook/internal/models"
	"github.com/crayonbox/coloringbook/internal/openai"
	"github.com/crayonbox/coloringbook/internal/themes"
	"github.com/google/uuid"
)

// invalidKeyMessage is what users see when OpenAI rejects their key.
const invalidKeyMessage = "Invalid API key. Please check your API key and try again."

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "POST":
		h.handleCreateSession(w, r)
	case "GET":
		sessions := h.sessionStore.GetAll()
		sessionList := make([]*models.GenerationSession, 0, len(sessions))
		for _, session := range sessions {
			sessionList = append(sessionList, session)
		}
		h.writeJSON(w, sessionList)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey   string `json:"api_key"`
		Provider string `json:"provider"`
		Model    string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	client, err := openai.New(req.APIKey)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := client.Verify(r.Context()); err != nil {
		if errors.Is(err, openai.ErrInvalidAPIKey) {
			h.writeError(w, invalidKeyMessage, http.StatusUnauthorized)
			return
		}
		h.writeError(w, "Failed to verify API key: "+err.Error(), http.StatusBadGateway)
		return
	}

	session := &models.GenerationSession{
		ID:        uuid.NewString(),
		Provider:  req.Provider,
		Model:     req.Model,
		CreatedAt: time.Now(),
		Client:    client,
	}
	h.sessionStore.Set(session.ID, session)

	slog.Info("Session created", "session_id", session.ID, "provider", session.Provider)
	h.writeJSON(w, session)
}

func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	parts := strings.Split(rest, "/")

	sessionID := parts[0]
	if sessionID == "" {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return
	}

	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case "GET":
			h.writeJSON(w, session)
		case "DELETE":
			h.sessionStore.Delete(sessionID)
			w.WriteHeader(http.StatusNoContent)
		default:
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch parts[1] {
	case "themes":
		if r.Method != "GET" {
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleThemes(w, r, session)
	case "theme":
		if r.Method != "PUT" {
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleSelectTheme(w, r, session)
	case "generate":
		if r.Method != "POST" {
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleGenerate(w, r, session)
	case "images":
		if len(parts) != 3 || parts[2] == "" {
			h.writeError(w, "Not found", http.StatusNotFound)
			return
		}
		if r.Method != "GET" {
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleImage(w, r, session, parts[2])
	case "archive":
		if r.Method != "GET" {
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleArchive(w, session)
	case "booklet":
		if r.Method != "GET" {
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleBooklet(w, session)
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}

// handleThemes returns the session's suggested themes, asking the text
// provider once and caching the result on the session. Concurrent
// requests for the same session collapse into a single upstream call.
func (h *Handler) handleThemes(w http.ResponseWriter, r *http.Request, session *models.GenerationSession) {
	if len(session.Themes) > 0 {
		h.writeJSON(w, session.Themes)
		return
	}

	v, err, _ := h.themeGroup.Do(session.ID, func() (interface{}, error) {
		provider, model, err := h.textProvider(session)
		if err != nil {
			return nil, err
		}

		suggested, err := themes.Suggest(r.Context(), provider, model)
		if err != nil {
			return nil, err
		}

		session.Themes = suggested
		h.sessionStore.Set(session.ID, session)
		return suggested, nil
	})
	if err != nil {
		if errors.Is(err, openai.ErrInvalidAPIKey) {
			h.writeError(w, invalidKeyMessage, http.StatusUnauthorized)
			return
		}
		h.writeError(w, "Failed to suggest themes: "+err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, v.([]string))
}

func (h *Handler) handleSelectTheme(w http.ResponseWriter, r *http.Request, session *models.GenerationSession) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Theme == "" {
		h.writeError(w, "Theme cannot be empty", http.StatusBadRequest)
		return
	}

	found := false
	for _, theme := range session.Themes {
		if theme == req.Theme {
			found = true
			break
		}
	}
	if !found {
		h.writeError(w, "Theme must be one of the suggested themes", http.StatusBadRequest)
		return
	}

	session.SelectedTheme = req.Theme
	h.sessionStore.Set(session.ID, session)

	slog.Info("Theme selected", "session_id", session.ID, "theme", req.Theme)
	h.writeJSON(w, session)
}
