package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"docflow/internal/crawler"
	"docflow/internal/extractor"
	"docflow/internal/generator"
	"docflow/internal/publish"
	"docflow/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSummarizer struct {
	calls int
}

func (s *stubSummarizer) SummarizeProject(ctx context.Context, analysis, moduleSummary string) (string, error) {
	s.calls++
	return "# Overview\n\nGenerated overview.", nil
}

func (s *stubSummarizer) SummarizeModule(ctx context.Context, name, data string) (string, error) {
	s.calls++
	return "# " + name + "\n- item", nil
}

func (s *stubSummarizer) SummarizeAPI(ctx context.Context, analysis string) (string, error) {
	s.calls++
	return "# API", nil
}

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"main.py":          "\"\"\"Entry point.\"\"\"\n\ndef main():\n    pass\n",
		"notion/client.py": "class Client:\n    \"\"\"Talks to Notion.\"\"\"\n    def publish(self, page):\n        pass\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func newTestPipeline(t *testing.T, sum *stubSummarizer) (*Pipeline, *storage.SQLiteStore) {
	t.Helper()
	ext, err := extractor.NewExtractor()
	require.NoError(t, err)
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	p := New(Deps{
		Crawler:   crawler.NewCrawler(ext, crawler.DefaultLimits(), nil),
		Generator: generator.NewGenerator(sum, generator.Options{}),
		Ledger:    store,
	})
	return p, store
}

func TestPipeline_GenerateWritesMarkdownAndRecordsRun(t *testing.T) {
	root := writeProject(t)
	p, store := newTestPipeline(t, &stubSummarizer{})
	outDir := filepath.Join(t.TempDir(), "docs")
	reportPath := filepath.Join(outDir, "pipeline_report.json")

	out, err := p.Run(context.Background(), Request{Mode: ModeGenerate, Root: root, OutDir: outDir, ReportPath: reportPath})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Stats.Files)
	require.Len(t, out.Documentation.Modules, 2)
	assert.Equal(t, "core", out.Documentation.Modules[0].Name)
	assert.Equal(t, "notion", out.Documentation.Modules[1].Name)
	assert.Equal(t, publish.NoAPIPlaceholder, out.Documentation.API)
	assert.FileExists(t, filepath.Join(outDir, "overview.md"))
	assert.FileExists(t, filepath.Join(outDir, "module_notion.md"))

	runs, err := store.ListRuns(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, out.RunID, runs[0].ID)
	assert.Equal(t, "done", runs[0].Phase)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	var names []string
	for _, st := range report.Stages {
		names = append(names, st.Name)
	}
	assert.Equal(t, []string{"scan", "generate", "record_sections", "write_markdown"}, names)
	assert.Zero(t, report.Summary.FailedStages)
}

func TestPipeline_PublishFromCache(t *testing.T) {
	root := writeProject(t)
	sum := &stubSummarizer{}
	p, store := newTestPipeline(t, sum)
	ctx := context.Background()

	_, err := p.Run(ctx, Request{Mode: ModeGenerate, Root: root})
	require.NoError(t, err)
	generated := sum.calls

	ws := publish.NewWorkspace()
	rootPage := ws.Seed("Docs")
	pub := publish.NewPublisher(ws, rootPage, publish.Options{ProjectName: "App"})

	out, err := p.Run(ctx, Request{Mode: ModePublish, Root: root, FromCache: true, Publisher: pub})
	require.NoError(t, err)
	assert.Equal(t, generated, sum.calls, "cached run must not call the model")

	require.NotNil(t, out.Result)
	assert.Equal(t, publish.PhaseDone, out.Result.Phase)
	assert.Equal(t, []string{"main", "overview", "module_core", "module_notion"}, out.Result.Index.Keys())

	tree, ok := ws.Tree(rootPage)
	require.True(t, ok)
	assert.Equal(t, "App Documentation", tree.Page.Title)
	assert.Len(t, tree.Pages, 3)

	pages, err := store.RunPages(ctx, out.RunID)
	require.NoError(t, err)
	assert.Len(t, pages, 4)

	runs, err := store.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "done", runs[0].Phase)
	assert.Equal(t, ModePublish, runs[0].Mode)
}

func TestPipeline_FailuresAreRecorded(t *testing.T) {
	ctx := context.Background()

	t.Run("access denied", func(t *testing.T) {
		root := writeProject(t)
		p, store := newTestPipeline(t, &stubSummarizer{})
		ws := publish.NewWorkspace()
		ws.BeforeCall = func(op, id string) error {
			if op == "CurrentUser" {
				return &publish.RemoteError{Op: op, Status: 401, Code: "unauthorized", Err: publish.ErrUnauthorized}
			}
			return nil
		}
		pub := publish.NewPublisher(ws, ws.Seed("Docs"), publish.Options{})

		_, err := p.Run(ctx, Request{Mode: ModePublish, Root: root, Publisher: pub})
		var access *publish.AccessError
		require.True(t, errors.As(err, &access))

		runs, err := store.ListRuns(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "failed", runs[0].Phase)
	})

	t.Run("cache without prior run", func(t *testing.T) {
		p, _ := newTestPipeline(t, &stubSummarizer{})
		_, err := p.Run(ctx, Request{Mode: ModePublish, Root: t.TempDir(), FromCache: true})
		assert.ErrorIs(t, err, storage.ErrNoRuns)
	})

	t.Run("empty project", func(t *testing.T) {
		p, _ := newTestPipeline(t, &stubSummarizer{})
		_, err := p.Run(ctx, Request{Root: t.TempDir()})
		assert.ErrorIs(t, err, generator.ErrNoSources)
	})
}

func TestReport_Finalize(t *testing.T) {
	r := NewReport(ModeGenerate, "/src")
	h := r.BeginStage("scan")
	r.EndStage(h, map[string]float64{"files": 2, " ": 1}, nil)
	h = r.BeginStage("generate")
	r.EndStage(h, nil, errors.New("boom"))
	r.AddSignal("info_code", "scan", "info", "note")
	r.AddSignal("bad", "scan", "critical", "failed")
	r.AddSignal("", "scan", "warning", "dropped")

	r.Finalize()
	assert.Equal(t, 2, r.Summary.StageCount)
	assert.Equal(t, 1, r.Summary.FailedStages)
	assert.Equal(t, map[string]float64{"files": 2}, r.Stages[0].Counters)
	assert.Equal(t, "boom", r.Stages[1].Error)
	require.Len(t, r.Signals, 2)
	assert.Equal(t, "bad", r.Signals[0].Code)
	assert.Equal(t, map[string]int{"critical": 1, "warning": 0, "info": 1}, r.Summary.SignalsBySeverity)
}
