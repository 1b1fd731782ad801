package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type OpenAISummarizer struct {
	client        *http.Client
	apiKey        string
	model         string
	endpoint      string
	temperature   float64
	promptBuilder *PromptBuilder
}

type openAIChatRequest struct {
	Model       string              `json:"model"`
	Messages    []openAIChatMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
}

type openAIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIChatMessage `json:"message"`
	} `json:"choices"`
}

func NewOpenAISummarizer(apiKey, model, baseURL string, temperature float64) *OpenAISummarizer {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/chat/completions"
	} else {
		endpoint = strings.TrimRight(endpoint, "/")
		if !strings.HasSuffix(endpoint, "/chat/completions") {
			if strings.HasSuffix(endpoint, "/v1") {
				endpoint += "/chat/completions"
			} else {
				endpoint += "/v1/chat/completions"
			}
		}
	}
	return &OpenAISummarizer{
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		apiKey:        apiKey,
		model:         model,
		endpoint:      endpoint,
		temperature:   temperature,
		promptBuilder: &PromptBuilder{},
	}
}

func (s *OpenAISummarizer) SummarizeProject(ctx context.Context, analysis string, moduleSummary string) (string, error) {
	return s.generate(ctx, s.promptBuilder.BuildProjectPrompt(analysis, moduleSummary))
}

func (s *OpenAISummarizer) SummarizeModule(ctx context.Context, moduleName string, moduleData string) (string, error) {
	return s.generate(ctx, s.promptBuilder.BuildModulePrompt(moduleName, moduleData))
}

func (s *OpenAISummarizer) SummarizeAPI(ctx context.Context, analysis string) (string, error) {
	return s.generate(ctx, s.promptBuilder.BuildAPIPrompt(analysis))
}

func (s *OpenAISummarizer) generate(ctx context.Context, prompt Prompt) (string, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		return "", fmt.Errorf("openai api key is required")
	}
	if strings.TrimSpace(s.model) == "" {
		return "", fmt.Errorf("openai model is required")
	}

	var messages []openAIChatMessage
	if prompt.System != "" {
		messages = append(messages, openAIChatMessage{Role: "system", Content: prompt.System})
	}
	messages = append(messages, openAIChatMessage{Role: "user", Content: prompt.User})

	body, err := json.Marshal(openAIChatRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: s.temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai chat request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai chat request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed openAIChatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode openai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return noAnalysis, nil
	}
	text := parsed.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return noAnalysis, nil
	}
	return cleanMarkdownOutput(text), nil
}
