package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"NOTION_API_KEY", "NOTION_PARENT_PAGE_ID", "OPENAI_API_KEY", "GEMINI_API_KEY", "MODEL_NAME",
		"DOCFLOW_AI_PROVIDER", "DOCFLOW_API_KEY", "DOCFLOW_AI_BASE_URL", "DOCFLOW_LOG_MODE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("missing.yaml")
	require.NoError(t, err)

	assert.Equal(t, "DocFlow", cfg.Project.Name)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "gpt-3.5-turbo", cfg.AI.Model)
	assert.InDelta(t, 0.2, cfg.AI.Temperature, 1e-6)
	assert.Equal(t, 100, cfg.Notion.BatchSize)
	assert.Equal(t, 3.0, cfg.Notion.RequestsPerSecond)
	assert.Equal(t, 500*time.Millisecond, cfg.Notion.RetryDelay)
	assert.Equal(t, int64(100*1024), cfg.Project.MaxFileBytes)
	assert.Equal(t, int64(500*1024), cfg.Project.MaxTotalBytes)
	assert.Equal(t, []string{"OPENAI_API_KEY", "NOTION_API_KEY", "NOTION_PARENT_PAGE_ID"}, cfg.Missing())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "config.yaml")
	yaml := `project:
  name: Acme
ai:
  provider: gemini
  model: gemini-2.0-flash
notion:
  parent_page_id: from-file
  retry_delay: 2s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("NOTION_PARENT_PAGE_ID", "from-env")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("NOTION_API_KEY", "secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Acme", cfg.Project.Name)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, "gem-key", cfg.AI.APIKey)
	assert.Equal(t, "from-env", cfg.Notion.ParentPageID)
	assert.Equal(t, 2*time.Second, cfg.Notion.RetryDelay)
	assert.Equal(t, 100, cfg.Notion.BatchSize, "unset keys keep defaults")
	assert.Empty(t, cfg.Missing())
}

func TestLoadConfig_ExplicitKeyWins(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "openai")
	t.Setenv("DOCFLOW_API_KEY", "explicit")
	t.Setenv("MODEL_NAME", "gpt-4o")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.AI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Empty(t, cfg.MissingAI())
	assert.Equal(t, []string{"NOTION_API_KEY", "NOTION_PARENT_PAGE_ID"}, cfg.MissingNotion())
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
