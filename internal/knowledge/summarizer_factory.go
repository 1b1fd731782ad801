package knowledge

import (
	"context"
	"fmt"
	"strings"
)

type SummarizerOptions struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
}

func NewSummarizer(ctx context.Context, opts SummarizerOptions) (Summarizer, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "gemini":
		return NewGeminiSummarizer(ctx, opts.APIKey, opts.Model, opts.Temperature)
	case "openai":
		return NewOpenAISummarizer(opts.APIKey, opts.Model, opts.BaseURL, float64(opts.Temperature)), nil
	default:
		return nil, fmt.Errorf("unsupported summarizer provider: %s", opts.Provider)
	}
}
