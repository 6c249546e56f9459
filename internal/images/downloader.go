package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Downloader retrieves generated images from their hosted URLs
type Downloader struct {
	HTTPClient *http.Client
}

// NewDownloader creates a new image downloader
func NewDownloader() *Downloader {
	return &Downloader{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FileName returns the on-disk name for the nth image of a run.
func FileName(index int) string {
	return fmt.Sprintf("generated_image_%d.png", index)
}

// Download fetches the image at imageURL and saves it into dir under
// the standard name for index. It returns the full path of the saved
// file.
func (d *Downloader) Download(ctx context.Context, imageURL, dir string, index int) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	if len(imageData) == 0 {
		return "", fmt.Errorf("empty image data")
	}

	outputPath := filepath.Join(dir, FileName(index))
	if err := os.WriteFile(outputPath, imageData, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return outputPath, nil
}
