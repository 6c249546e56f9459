package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/crayonbox/coloringbook/internal/archive"
	"github.com/crayonbox/coloringbook/internal/booklet"
	"github.com/crayonbox/coloringbook/internal/bundle"
	"github.com/crayonbox/coloringbook/internal/generation"
	"github.com/crayonbox/coloringbook/internal/models"
	"github.com/crayonbox/coloringbook/internal/openai"
)

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request, session *models.GenerationSession) {
	var req struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Count == 0 {
		req.Count = generation.DefaultImages
	}
	if req.Count < generation.MinImages || req.Count > generation.MaxImages {
		h.writeError(w, fmt.Sprintf("Image count must be between %d and %d", generation.MinImages, generation.MaxImages), http.StatusBadRequest)
		return
	}

	if session.SelectedTheme == "" {
		h.writeError(w, "No theme selected", http.StatusBadRequest)
		return
	}

	slog.Info("Starting image run", "session_id", session.ID, "theme", session.SelectedTheme, "count", req.Count)

	b, err := h.generator.Run(r.Context(), session.Client, session.SelectedTheme, req.Count)
	if err != nil {
		if errors.Is(err, generation.ErrCountOutOfRange) {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.writeError(w, "Failed to generate images: "+err.Error(), http.StatusInternalServerError)
		return
	}

	b.Model = openai.ImageModel()
	if _, err := bundle.WriteManifest(b); err != nil {
		slog.Warn("Failed to write run manifest", "bundle", b.Name, "error", err)
	}

	session.LastBundle = b
	h.sessionStore.Set(session.ID, session)

	resp := struct {
		Message string         `json:"message"`
		Bundle  *models.Bundle `json:"bundle"`
	}{
		Message: fmt.Sprintf("Generated %d images", b.Generated),
		Bundle:  b,
	}
	h.writeJSON(w, resp)
}

func (h *Handler) handleImage(w http.ResponseWriter, r *http.Request, session *models.GenerationSession, filename string) {
	if session.LastBundle == nil {
		h.writeError(w, "No generated images for this session", http.StatusNotFound)
		return
	}

	// Prevent directory traversal attacks
	if strings.Contains(filename, "..") {
		h.writeError(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	http.ServeFile(w, r, filepath.Join(session.LastBundle.Dir, filename))
}

func (h *Handler) handleArchive(w http.ResponseWriter, session *models.GenerationSession) {
	b := session.LastBundle
	if b == nil {
		h.writeError(w, "No generated images for this session", http.StatusNotFound)
		return
	}

	data, err := archive.Zip(b.Dir)
	if err != nil {
		h.writeError(w, "Failed to create archive: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", b.Name+".zip"))
	if _, err := w.Write(data); err != nil {
		slog.Error("Unable to write archive response", "err", err)
	}
}

func (h *Handler) handleBooklet(w http.ResponseWriter, session *models.GenerationSession) {
	b := session.LastBundle
	if b == nil {
		h.writeError(w, "No generated images for this session", http.StatusNotFound)
		return
	}

	data, err := booklet.PDF(b.Dir, b.Theme)
	if err != nil {
		h.writeError(w, "Failed to create booklet: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", b.Name+".pdf"))
	if _, err := w.Write(data); err != nil {
		slog.Error("Unable to write booklet response", "err", err)
	}
}
