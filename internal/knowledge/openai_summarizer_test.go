package knowledge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAISummarizerEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"default", "", "https://api.openai.com/v1/chat/completions"},
		{"host only", "http://localhost:8080/", "http://localhost:8080/v1/chat/completions"},
		{"versioned", "http://localhost:8080/v1", "http://localhost:8080/v1/chat/completions"},
		{"full", "http://localhost:8080/v1/chat/completions", "http://localhost:8080/v1/chat/completions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewOpenAISummarizer("key", "gpt", tt.baseURL, 0.2)
			assert.Equal(t, tt.want, s.endpoint)
		})
	}
}

func TestOpenAISummarizer_Generate(t *testing.T) {
	var got openAIChatRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"` + "```markdown\\n# Title\\n- item\\n```" + `"}}]}`))
	}))
	defer srv.Close()

	s := NewOpenAISummarizer("secret", "gpt-test", srv.URL, 0.2)
	out, err := s.SummarizeModule(context.Background(), "core", `{"files":["main.py"]}`)
	require.NoError(t, err)

	assert.Equal(t, "# Title\n- item", out)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "gpt-test", got.Model)
	assert.InDelta(t, 0.2, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, "Module: core")
}

func TestOpenAISummarizer_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		s := NewOpenAISummarizer("", "gpt", "", 0)
		_, err := s.SummarizeAPI(context.Background(), "{}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api key is required")
	})

	t.Run("http status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		s := NewOpenAISummarizer("key", "gpt", srv.URL, 0)
		_, err := s.SummarizeProject(context.Background(), "{}", "core")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "(429)")
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		s := NewOpenAISummarizer("key", "gpt", srv.URL, 0)
		out, err := s.SummarizeProject(context.Background(), "{}", "core")
		require.NoError(t, err)
		assert.Equal(t, noAnalysis, out)
	})
}

func TestCleanMarkdownOutput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "# Title\n\nbody", "# Title\n\nbody"},
		{"markdown fence", "```markdown\n# Title\n```", "# Title"},
		{"md fence", "```md\n# Title\n```\n", "# Title"},
		{"bare fence", "```\ntext\n```", "text"},
		{"leading code block kept", "```go\nfunc main() {}\n```", "```go\nfunc main() {}\n```"},
		{"unterminated", "```markdown\n# Title", "```markdown\n# Title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownOutput(tt.in))
		})
	}
}

func TestPromptBuilder(t *testing.T) {
	pb := &PromptBuilder{}

	t.Run("project", func(t *testing.T) {
		p := pb.BuildProjectPrompt(`{"a":1}`, "core, api")
		assert.NotEmpty(t, p.System)
		assert.Contains(t, p.User, `{"a":1}`)
		assert.Contains(t, p.User, "The project has the following modules: core, api")
		assert.Contains(t, p.User, "[REDACTED]")
	})

	t.Run("module", func(t *testing.T) {
		p := pb.BuildModulePrompt("storage", "data")
		assert.Contains(t, p.User, "# storage Module")
		assert.True(t, strings.Contains(p.User, "Data: data"))
	})

	t.Run("api", func(t *testing.T) {
		p := pb.BuildAPIPrompt("routes")
		assert.Contains(t, p.User, "routes")
		assert.Contains(t, p.User, "## Endpoints")
		assert.Contains(t, p.System, "API documentation")
	})
}

func TestNewSummarizer(t *testing.T) {
	t.Run("defaults to openai", func(t *testing.T) {
		s, err := NewSummarizer(context.Background(), SummarizerOptions{APIKey: "k", Model: "m"})
		require.NoError(t, err)
		_, ok := s.(*OpenAISummarizer)
		assert.True(t, ok)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := NewSummarizer(context.Background(), SummarizerOptions{Provider: "ollama"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported summarizer provider: ollama")
	})
}
