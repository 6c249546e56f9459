package providers

import (
	"context"
)

// Config represents the configuration for an LLM provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Provider defines the interface for a text completion provider
type Provider interface {
	Complete(ctx context.Context, config Config) (string, error)
}

// ImageService is a provider that can also verify its credential and
// render images from a prompt. The returned string is a URL the image
// can be fetched from.
type ImageService interface {
	Provider
	Verify(ctx context.Context) error
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
