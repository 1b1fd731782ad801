package knowledge

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiSummarizer implements Summarizer using Gemini text generation.
type GeminiSummarizer struct {
	client        *genai.Client
	model         string
	temperature   float32
	promptBuilder *PromptBuilder
}

func NewGeminiSummarizer(ctx context.Context, apiKey string, modelName string, temperature float32) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiSummarizer{
		client:        client,
		model:         modelName,
		temperature:   temperature,
		promptBuilder: &PromptBuilder{},
	}, nil
}

func (s *GeminiSummarizer) SummarizeProject(ctx context.Context, analysis string, moduleSummary string) (string, error) {
	return s.generate(ctx, s.promptBuilder.BuildProjectPrompt(analysis, moduleSummary))
}

func (s *GeminiSummarizer) SummarizeModule(ctx context.Context, moduleName string, moduleData string) (string, error) {
	return s.generate(ctx, s.promptBuilder.BuildModulePrompt(moduleName, moduleData))
}

func (s *GeminiSummarizer) SummarizeAPI(ctx context.Context, analysis string) (string, error) {
	return s.generate(ctx, s.promptBuilder.BuildAPIPrompt(analysis))
}

func (s *GeminiSummarizer) generate(ctx context.Context, prompt Prompt) (string, error) {
	temperature := s.temperature
	config := &genai.GenerateContentConfig{Temperature: &temperature}
	if prompt.System != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: prompt.System}}}
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt.User), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return noAnalysis, nil
	}
	return cleanMarkdownOutput(text), nil
}
