package themes

import (
	"context"
	"fmt"
	"strings"

	"github.com/crayonbox/coloringbook/internal/providers"
)

// SuggestionPrompt asks the model for a plain list of themes.
const SuggestionPrompt = "Generate a list of 10 suitable themes for children's coloring book pages."

// Suggest asks the provider for theme ideas and parses them into a
// clean list.
func Suggest(ctx context.Context, provider providers.Provider, model string) ([]string, error) {
	config := providers.Config{
		Model:       model,
		Temperature: 0.7,
		Prompt:      SuggestionPrompt,
	}

	raw, err := provider.Complete(ctx, config)
	if err != nil {
		return nil, err
	}

	themes := ParseList(raw)
	if len(themes) == 0 {
		return nil, fmt.Errorf("no themes found in response")
	}

	return themes, nil
}

// ParseList splits a model response into individual themes, one per
// line, trimming whitespace and leading list dashes.
func ParseList(raw string) []string {
	var themes []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "- ")
		if line == "" {
			continue
		}
		themes = append(themes, line)
	}
	return themes
}
