package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Name          string `yaml:"name"`
		Root          string `yaml:"root"`
		MaxFileBytes  int64  `yaml:"max_file_bytes"`
		MaxTotalBytes int64  `yaml:"max_total_bytes"`
	} `yaml:"project"`
	AI struct {
		Provider    string  `yaml:"provider"` // openai or gemini
		Model       string  `yaml:"model"`
		APIKey      string  `yaml:"api_key"`
		BaseURL     string  `yaml:"base_url"` // OpenAI-compatible endpoint
		Temperature float32 `yaml:"temperature"`
	} `yaml:"ai"`
	Notion struct {
		APIKey            string        `yaml:"api_key"`
		ParentPageID      string        `yaml:"parent_page_id"`
		BatchSize         int           `yaml:"batch_size"`
		RequestsPerSecond float64       `yaml:"requests_per_second"`
		RetryDelay        time.Duration `yaml:"retry_delay"`
		Timeout           time.Duration `yaml:"timeout"`
	} `yaml:"notion"`
	Log struct {
		Mode string `yaml:"mode"` // dev or prod
	} `yaml:"log"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	var cfg Config
	cfg.Project.Name = "DocFlow"
	cfg.Project.Root = "."
	cfg.Project.MaxFileBytes = 100 * 1024
	cfg.Project.MaxTotalBytes = 500 * 1024
	cfg.AI.Provider = "openai"
	cfg.AI.Model = "gpt-3.5-turbo"
	cfg.AI.Temperature = 0.2
	cfg.Notion.BatchSize = 100
	cfg.Notion.RequestsPerSecond = 3
	cfg.Notion.RetryDelay = 500 * time.Millisecond
	cfg.Notion.Timeout = 30 * time.Second
	cfg.Log.Mode = "dev"
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config; a missing file keeps the defaults
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	// 3. Override with Environment Variables if present
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}
	override(&c.Notion.APIKey, "NOTION_API_KEY")
	override(&c.Notion.ParentPageID, "NOTION_PARENT_PAGE_ID")
	override(&c.AI.Provider, "DOCFLOW_AI_PROVIDER")
	override(&c.AI.Model, "MODEL_NAME")
	override(&c.AI.BaseURL, "DOCFLOW_AI_BASE_URL")
	override(&c.Log.Mode, "DOCFLOW_LOG_MODE")

	// DOCFLOW_API_KEY wins; otherwise fall back to the provider's own variable.
	switch c.AI.Provider {
	case "gemini":
		override(&c.AI.APIKey, "DOCFLOW_API_KEY", "GEMINI_API_KEY")
	default:
		override(&c.AI.APIKey, "DOCFLOW_API_KEY", "OPENAI_API_KEY")
	}
}

// Missing lists the required settings that are still unset, named by the
// environment variable that provides them.
func (c *Config) Missing() []string {
	return append(c.MissingAI(), c.MissingNotion()...)
}

func (c *Config) MissingAI() []string {
	if c.AI.APIKey != "" {
		return nil
	}
	if c.AI.Provider == "gemini" {
		return []string{"GEMINI_API_KEY"}
	}
	return []string{"OPENAI_API_KEY"}
}

func (c *Config) MissingNotion() []string {
	var missing []string
	if c.Notion.APIKey == "" {
		missing = append(missing, "NOTION_API_KEY")
	}
	if c.Notion.ParentPageID == "" {
		missing = append(missing, "NOTION_PARENT_PAGE_ID")
	}
	return missing
}
