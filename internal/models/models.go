package models

import (
	"time"

	"github.com/crayonbox/coloringbook/internal/providers"
)

// GenerationSession represents one browser session working toward a
// coloring book bundle.
type GenerationSession struct {
	ID            string                 `json:"id"`
	Themes        []string               `json:"themes,omitempty"`
	SelectedTheme string                 `json:"selected_theme,omitempty"`
	Provider      string                 `json:"provider,omitempty"`
	Model         string                 `json:"model,omitempty"`
	LastBundle    *Bundle                `json:"last_bundle,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	Client        providers.ImageService `json:"-"`
}

// Bundle is one completed generation run and the files it produced.
type Bundle struct {
	Name      string        `json:"name"`
	Dir       string        `json:"-"`
	Theme     string        `json:"theme"`
	Model     string        `json:"model,omitempty"`
	Requested int           `json:"requested"`
	Generated int           `json:"generated"`
	Images    []ImageResult `json:"images"`
	CreatedAt time.Time     `json:"created_at"`
}

// ImageResult records the outcome for a single image slot in a run.
type ImageResult struct {
	Index    int    `json:"index"`
	Prompt   string `json:"prompt"`
	URL      string `json:"url,omitempty"`
	FileName string `json:"file_name,omitempty"`
	FilePath string `json:"-"`
	Error    string `json:"error,omitempty"`
}

// OK reports whether this slot produced a saved image.
func (r ImageResult) OK() bool {
	return r.Error == "" && r.FileName != ""
}
