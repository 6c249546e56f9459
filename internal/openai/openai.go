package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/crayonbox/coloringbook/internal/providers"
	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrEmptyAPIKey is returned by New when no key is supplied.
	ErrEmptyAPIKey = errors.New("API key cannot be empty")

	// ErrInvalidAPIKey is returned when OpenAI rejects the credential.
	ErrInvalidAPIKey = errors.New("invalid API key")
)

const (
	defaultChatModel  = openai.GPT3Dot5Turbo
	defaultImageModel = openai.CreateImageModelDallE2
)

// Client is an OpenAI-backed provider scoped to a single API key.
type Client struct {
	client *openai.Client
}

// New builds a client for the given API key. The key is only checked
// for presence here; Verify confirms it against the API.
func New(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Client{client: openai.NewClientWithConfig(config)}, nil
}

// Verify confirms the API key is accepted by listing available models.
func (c *Client) Verify(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		if isAuthError(err) {
			return ErrInvalidAPIKey
		}
		return fmt.Errorf("failed to verify API key: %w", err)
	}
	return nil
}

// Complete sends the prompt as a single user message and returns the
// first choice.
func (c *Client) Complete(ctx context.Context, config providers.Config) (string, error) {
	model := config.Model
	if model == "" {
		model = os.Getenv("OPENAI_MODEL")
	}
	if model == "" {
		model = defaultChatModel
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: config.Prompt,
			},
		},
		Temperature: float32(config.Temperature),
	})
	if err != nil {
		if isAuthError(err) {
			return "", ErrInvalidAPIKey
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateImage renders a single image for the prompt and returns a
// URL it can be downloaded from.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          ImageModel(),
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		if isAuthError(err) {
			return "", ErrInvalidAPIKey
		}
		return "", fmt.Errorf("failed to create image: %w", err)
	}

	if len(resp.Data) == 0 {
		return "", fmt.Errorf("no image data returned from OpenAI")
	}

	return resp.Data[0].URL, nil
}

// ImageModel reports the image model requests will use.
func ImageModel() string {
	if model := os.Getenv("OPENAI_IMAGE_MODEL"); model != "" {
		return model
	}
	return defaultImageModel
}

func isAuthError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 401 || reqErr.HTTPStatusCode == 403
	}
	return false
}
