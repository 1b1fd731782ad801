package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"docflow/internal/config"
	"docflow/internal/crawler"
	"docflow/internal/extractor"
	"docflow/internal/generator"
	"docflow/internal/knowledge"
	"docflow/internal/logger"
	"docflow/internal/notion"
	"docflow/internal/publish"
	"docflow/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "docflow",
		Short:         "Generate project documentation with an LLM and publish it to Notion",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	configPath string
	dbPath     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "docflow.db", "Path to the local run ledger (SQLite)")

	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(historyCmd)
}

// app carries what every command loads before doing its work.
type app struct {
	cfg *config.Config
	log *logger.Logger
}

func loadApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &app{cfg: cfg, log: log}, nil
}

func requireSettings(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required settings: %s (set them in .env, the environment or %s)", strings.Join(missing, ", "), configPath)
}

func (a *app) projectRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.Project.Root
}

func (a *app) newCrawler() (*crawler.Crawler, error) {
	ext, err := extractor.NewExtractor()
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}
	limits := crawler.Limits{
		MaxFileBytes:  a.cfg.Project.MaxFileBytes,
		MaxTotalBytes: a.cfg.Project.MaxTotalBytes,
	}
	return crawler.NewCrawler(ext, limits, a.log.With("component", "crawler")), nil
}

func (a *app) newGenerator(ctx context.Context) (*generator.Generator, error) {
	if err := requireSettings(a.cfg.MissingAI()); err != nil {
		return nil, err
	}
	summarizer, err := knowledge.NewSummarizer(ctx, knowledge.SummarizerOptions{
		Provider:    a.cfg.AI.Provider,
		APIKey:      a.cfg.AI.APIKey,
		Model:       a.cfg.AI.Model,
		BaseURL:     a.cfg.AI.BaseURL,
		Temperature: a.cfg.AI.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create summarizer: %w", err)
	}
	return generator.NewGenerator(summarizer, generator.Options{Logger: a.log.With("component", "generator")}), nil
}

// newNotionPublisher connects to the configured Notion root page with
// request pacing and the configured retry delay.
func (a *app) newNotionPublisher() (*publish.Publisher, string, error) {
	if err := requireSettings(a.cfg.MissingNotion()); err != nil {
		return nil, "", err
	}
	rootID, err := notion.ParsePageID(a.cfg.Notion.ParentPageID)
	if err != nil {
		return nil, "", fmt.Errorf("invalid NOTION_PARENT_PAGE_ID: %w", err)
	}
	remote := publish.WithRateLimit(
		notion.NewClient(a.cfg.Notion.APIKey, a.cfg.Notion.Timeout),
		publish.NewLimiter(a.cfg.Notion.RequestsPerSecond),
	)
	return a.newPublisher(remote, rootID), rootID, nil
}

func (a *app) newPublisher(remote publish.Remote, rootID string) *publish.Publisher {
	retry := publish.DefaultRetryPolicy()
	if a.cfg.Notion.RetryDelay > 0 {
		retry.Delay = a.cfg.Notion.RetryDelay
	}
	return publish.NewPublisher(remote, rootID, publish.Options{
		ProjectName: a.cfg.Project.Name,
		BatchSize:   a.cfg.Notion.BatchSize,
		Retry:       &retry,
		Logger:      a.log.With("component", "publisher"),
	})
}

func initStore() (*storage.SQLiteStore, error) {
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}
