package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/crayonbox/coloringbook/internal/bundle"
	"github.com/crayonbox/coloringbook/internal/images"
	"github.com/crayonbox/coloringbook/internal/models"
	"golang.org/x/time/rate"
)

const (
	// MinImages and MaxImages bound how many pages one run may request.
	MinImages = 1
	MaxImages = 10

	// DefaultImages is used when a request leaves the count unset.
	DefaultImages = 3

	requestInterval = time.Second
)

// ErrCountOutOfRange is returned when a run asks for too few or too
// many images.
var ErrCountOutOfRange = errors.New("image count out of range")

// ImageSource produces a hosted image URL for a prompt.
type ImageSource interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Service runs image generation batches and collects their results
type Service struct {
	downloader *images.Downloader
	limiter    *rate.Limiter
	baseDir    string
}

// NewService creates a generation service writing bundles under baseDir
func NewService(baseDir string) *Service {
	return &Service{
		downloader: images.NewDownloader(),
		limiter:    rate.NewLimiter(rate.Every(requestInterval), 1),
		baseDir:    baseDir,
	}
}

// Run generates count images for the theme, one request at a time.
// A failed slot is recorded on its ImageResult and skipped; the run
// itself only fails on invalid input or an unusable output directory.
func (s *Service) Run(ctx context.Context, source ImageSource, theme string, count int) (*models.Bundle, error) {
	if count < MinImages || count > MaxImages {
		return nil, fmt.Errorf("%w: must be between %d and %d, got %d", ErrCountOutOfRange, MinImages, MaxImages, count)
	}

	now := time.Now()
	name := bundle.Name(theme, now)
	dir := filepath.Join(s.baseDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create bundle directory: %w", err)
	}

	b := &models.Bundle{
		Name:      name,
		Dir:       dir,
		Theme:     theme,
		Requested: count,
		CreatedAt: now,
		Images:    make([]models.ImageResult, 0, count),
	}

	prompt := Prompt(theme)
	for i := 1; i <= count; i++ {
		result := models.ImageResult{Index: i, Prompt: prompt}

		if err := s.limiter.Wait(ctx); err != nil {
			result.Error = err.Error()
			b.Images = append(b.Images, result)
			slog.Warn("Image run interrupted", "index", i, "theme", theme, "error", err)
			continue
		}

		url, err := source.GenerateImage(ctx, prompt)
		if err != nil {
			result.Error = err.Error()
			b.Images = append(b.Images, result)
			slog.Warn("Failed to generate image", "index", i, "theme", theme, "error", err)
			continue
		}
		result.URL = url

		path, err := s.downloader.Download(ctx, url, dir, i)
		if err != nil {
			result.Error = err.Error()
			b.Images = append(b.Images, result)
			slog.Warn("Failed to download image", "index", i, "url", url, "error", err)
			continue
		}
		result.FilePath = path
		result.FileName = images.FileName(i)

		b.Generated++
		b.Images = append(b.Images, result)
		slog.Info("Generated image", "index", i, "theme", theme, "file", result.FileName)
	}

	return b, nil
}
