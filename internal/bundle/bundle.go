package bundle

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/crayonbox/coloringbook/internal/models"
	"gopkg.in/yaml.v3"
)

const stampLayout = "20060102_150405"

// Name builds the directory name for a generation run, a timestamp
// followed by the sanitized theme.
func Name(theme string, now time.Time) string {
	return now.Format(stampLayout) + "_" + sanitizeTheme(theme)
}

// sanitizeTheme makes a theme safe to use as a directory name. Spaces
// become underscores and filesystem-hostile runes are dropped.
func sanitizeTheme(theme string) string {
	theme = strings.TrimSpace(theme)
	theme = strings.ReplaceAll(theme, " ", "_")
	return strings.Map(func(r rune) rune {
		if r < 32 || strings.ContainsRune(`/\:*?"<>|`, r) {
			return -1
		}
		return r
	}, theme)
}

// Manifest is the on-disk record of a completed run
type Manifest struct {
	Name      string          `yaml:"name"`
	Theme     string          `yaml:"theme"`
	Model     string          `yaml:"model,omitempty"`
	Requested int             `yaml:"requested"`
	Generated int             `yaml:"generated"`
	Timestamp string          `yaml:"timestamp"`
	Images    []ManifestImage `yaml:"images"`
}

// ManifestImage records the outcome of a single image slot
type ManifestImage struct {
	Index    int    `yaml:"index"`
	FileName string `yaml:"filename,omitempty"`
	Prompt   string `yaml:"prompt"`
	URL      string `yaml:"url,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

// WriteManifest saves the run record as <dir>.yaml next to the bundle
// directory, never inside it, so the directory holds only images.
func WriteManifest(b *models.Bundle) (string, error) {
	manifest := Manifest{
		Name:      b.Name,
		Theme:     b.Theme,
		Model:     b.Model,
		Requested: b.Requested,
		Generated: b.Generated,
		Timestamp: b.CreatedAt.Format(time.RFC3339),
		Images:    make([]ManifestImage, 0, len(b.Images)),
	}
	for _, img := range b.Images {
		manifest.Images = append(manifest.Images, ManifestImage{
			Index:    img.Index,
			FileName: img.FileName,
			Prompt:   img.Prompt,
			URL:      img.URL,
			Error:    img.Error,
		})
	}

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	path := b.Dir + ".yaml"
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return path, nil
}
