package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"docflow/internal/crawler"
	"docflow/internal/extractor"
	"docflow/internal/generator"
	"docflow/internal/logger"
	"docflow/internal/publish"
	"docflow/internal/storage"
)

const (
	ModeGenerate = "generate"
	ModePublish  = "publish"
	ModeDryRun   = "dry-run"
)

// Pipeline runs the documentation stages: scan, generate, record and
// publish. Any of the collaborators may be nil when the requested stages
// do not need it.
type Pipeline struct {
	crawler   *crawler.Crawler
	generator *generator.Generator
	ledger    storage.Ledger
	log       *logger.Logger
}

type Deps struct {
	Crawler   *crawler.Crawler
	Generator *generator.Generator
	Ledger    storage.Ledger
	Logger    *logger.Logger
}

func New(deps Deps) *Pipeline {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	return &Pipeline{
		crawler:   deps.Crawler,
		generator: deps.Generator,
		ledger:    deps.Ledger,
		log:       deps.Logger,
	}
}

// Request describes one run.
type Request struct {
	Mode string
	Root string
	// FromCache reuses the newest recorded documentation of Root instead
	// of scanning and generating.
	FromCache bool
	// OutDir, when set, receives the documentation as markdown files.
	OutDir string
	// Publisher, when set, publishes the documentation after verifying
	// access to the root page.
	Publisher *publish.Publisher
	// ReportPath, when set, receives the stage report as JSON.
	ReportPath string
}

// Outcome is what a run produced.
type Outcome struct {
	RunID         string
	Documentation publish.Documentation
	Stats         crawler.Stats
	Written       []string
	Result        *publish.Result
	Warnings      []string
	Report        *Report
}

// Run executes the stages the request asks for. The run is recorded in
// the ledger when one is configured, including failed runs.
func (p *Pipeline) Run(ctx context.Context, req Request) (out *Outcome, retErr error) {
	root, err := filepath.Abs(req.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	if req.Mode == "" {
		req.Mode = ModeGenerate
	}

	report := NewReport(req.Mode, root)
	out = &Outcome{Report: report}
	phase := "started"

	if p.ledger != nil {
		run, err := p.ledger.BeginRun(ctx, root, req.Mode)
		if err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
		out.RunID = run.ID
		report.RunID = run.ID
	}

	defer func() {
		if retErr != nil {
			phase = "failed"
			report.AddSignal("run_failed", req.Mode, "critical", retErr.Error())
		}
		if p.ledger != nil && out.RunID != "" {
			if err := p.ledger.FinishRun(context.WithoutCancel(ctx), out.RunID, phase, out.Warnings); err != nil {
				p.log.Warn("failed to finish run record", "run_id", out.RunID, "error", err)
			}
		}
		if req.ReportPath != "" {
			if err := report.Save(req.ReportPath); err != nil {
				fmt.Printf("⚠️  Failed to write pipeline report: %v\n", err)
			}
		}
	}()

	if req.FromCache {
		doc, err := p.loadCacheStage(ctx, report, root)
		if err != nil {
			return out, err
		}
		out.Documentation = *doc
	} else {
		analysis, err := p.scanStage(report, root, out)
		if err != nil {
			return out, err
		}
		if err := p.generateStage(ctx, report, analysis, out); err != nil {
			return out, err
		}
	}
	phase = "generated"

	if p.ledger != nil && !req.FromCache {
		stage := report.BeginStage("record_sections")
		err := p.ledger.SaveDocumentation(ctx, out.RunID, out.Documentation)
		report.EndStage(stage, nil, err)
		if err != nil {
			return out, fmt.Errorf("failed to record documentation: %w", err)
		}
	}

	if req.OutDir != "" {
		stage := report.BeginStage("write_markdown")
		written, err := generator.WriteMarkdown(req.OutDir, filepath.Base(root), out.Documentation)
		report.EndStage(stage, map[string]float64{"files": float64(len(written))}, err)
		if err != nil {
			return out, err
		}
		out.Written = written
		fmt.Printf("📝 Wrote %d markdown files to %s\n", len(written), req.OutDir)
	}

	if req.Publisher != nil {
		if err := p.publishStage(ctx, report, req.Publisher, out); err != nil {
			return out, err
		}
		phase = out.Result.Phase.String()
	} else {
		phase = "done"
	}

	return out, nil
}

func (p *Pipeline) loadCacheStage(ctx context.Context, report *Report, root string) (*publish.Documentation, error) {
	stage := report.BeginStage("load_cache")
	if p.ledger == nil {
		err := errors.New("a run ledger is required to reuse cached documentation")
		report.EndStage(stage, nil, err)
		return nil, err
	}
	doc, runID, err := p.ledger.LatestDocumentation(ctx, root)
	report.EndStage(stage, nil, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached documentation: %w", err)
	}
	fmt.Printf("📦 Reusing documentation from run %s\n", runID)
	return doc, nil
}

func (p *Pipeline) scanStage(report *Report, root string, out *Outcome) (*generator.Analysis, error) {
	if p.crawler == nil {
		return nil, errors.New("no crawler configured")
	}
	fmt.Printf("🔍 Scanning %s...\n", root)
	stage := report.BeginStage("scan")
	analysis := generator.NewAnalysis()
	stats, err := p.crawler.ScanProject(root, func(relPath string, summary *extractor.FileSummary) {
		analysis.Add(relPath, summary)
	})
	out.Stats = stats
	report.EndStage(stage, map[string]float64{
		"files":       float64(stats.Files),
		"bytes":       float64(stats.Bytes),
		"skipped":     float64(len(stats.Skipped)),
		"parse_fails": float64(stats.ParseFails),
	}, err)
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	if stats.Truncated {
		report.AddSignal("size_limit_reached", "scan", "warning", "Total size limit reached; remaining files were not analysed.")
	}
	fmt.Printf("  -> Analysed %d files (%d bytes)\n", stats.Files, stats.Bytes)
	return analysis, nil
}

func (p *Pipeline) generateStage(ctx context.Context, report *Report, analysis *generator.Analysis, out *Outcome) error {
	if p.generator == nil {
		return errors.New("no generator configured")
	}
	fmt.Println("🧠 Generating documentation...")
	stage := report.BeginStage("generate")
	gen, err := p.generator.Generate(ctx, analysis)
	if err != nil {
		report.EndStage(stage, nil, err)
		return err
	}
	report.EndStage(stage, map[string]float64{
		"modules":  float64(len(gen.Documentation.Modules)),
		"warnings": float64(len(gen.Warnings)),
	}, nil)
	for _, w := range gen.Warnings {
		report.AddSignal("generation_warning", "generate", "warning", w)
	}
	out.Documentation = gen.Documentation
	out.Warnings = append(out.Warnings, gen.Warnings...)
	return nil
}

func (p *Pipeline) publishStage(ctx context.Context, report *Report, pub *publish.Publisher, out *Outcome) error {
	fmt.Println("🔌 Verifying workspace access...")
	stage := report.BeginStage("verify")
	err := pub.Verify(ctx)
	report.EndStage(stage, nil, err)
	if err != nil {
		return err
	}

	fmt.Println("🚀 Publishing documentation...")
	stage = report.BeginStage("publish")
	result, err := pub.Publish(ctx, out.Documentation.Sections())
	var counters map[string]float64
	if result != nil {
		counters = map[string]float64{
			"pages":    float64(result.Index.Len()),
			"warnings": float64(len(result.Warnings)),
		}
	}
	report.EndStage(stage, counters, err)
	if err != nil {
		return err
	}
	out.Result = result
	for _, w := range result.Warnings {
		report.AddSignal("publish_warning", "publish", "warning", w)
	}
	out.Warnings = append(out.Warnings, result.Warnings...)

	if p.ledger != nil {
		stage := report.BeginStage("record_pages")
		err := p.ledger.SavePages(ctx, out.RunID, result.Index)
		report.EndStage(stage, map[string]float64{"pages": float64(result.Index.Len())}, err)
		if err != nil {
			p.log.Warn("failed to record published pages", "run_id", out.RunID, "error", err)
			out.Warnings = append(out.Warnings, fmt.Sprintf("failed to record published pages: %v", err))
		}
	}
	return nil
}
