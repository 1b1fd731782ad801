package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docflow/internal/knowledge"
	"docflow/internal/logger"
	"docflow/internal/publish"
)

var ErrNoSources = errors.New("no source files to document")

type Options struct {
	// TokenBudget caps the estimated size of the analysis in one prompt.
	TokenBudget int
	Logger      *logger.Logger
}

// Generator turns a project analysis into documentation text using a
// language model.
type Generator struct {
	summarizer knowledge.Summarizer
	budget     int
	log        *logger.Logger
}

// Output is the generated documentation plus the problems that were
// skipped over while producing it.
type Output struct {
	Documentation publish.Documentation
	Warnings      []string
}

func NewGenerator(s knowledge.Summarizer, opts Options) *Generator {
	if opts.TokenBudget <= 0 {
		opts.TokenBudget = DefaultTokenBudget
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Generator{summarizer: s, budget: opts.TokenBudget, log: opts.Logger}
}

// Generate produces the overview, one document per module and the API
// document. A failed overview aborts the run; failed module or API
// documents are recorded as warnings.
func (g *Generator) Generate(ctx context.Context, a *Analysis) (*Output, error) {
	if a == nil || a.Len() == 0 {
		return nil, ErrNoSources
	}
	out := &Output{}

	overview, err := g.overview(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project overview: %w", err)
	}
	if diagram := a.DependencyDiagram(); diagram != "" {
		overview = strings.TrimRight(overview, "\n") + "\n\n" + diagram
	}
	out.Documentation.Overview = overview

	for _, m := range a.Modules() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data := marshal(fitToBudget(a.Subset(m.Files), g.budget))
		body, err := g.summarizer.SummarizeModule(ctx, m.Name, data)
		if err != nil {
			out.warn(g.log, "failed to generate module documentation", err, "module", m.Name)
			continue
		}
		g.log.Debug("module documented", "module", m.Name, "files", len(m.Files))
		out.Documentation.Modules = append(out.Documentation.Modules, publish.ModuleDoc{Name: m.Name, Body: body})
	}

	out.Documentation.API = publish.NoAPIPlaceholder
	if files := a.APIFiles(); len(files) > 0 {
		body, err := g.summarizer.SummarizeAPI(ctx, marshal(fitToBudget(a.Subset(files), g.budget)))
		if err != nil {
			out.warn(g.log, "failed to generate API documentation", err, "files", len(files))
		} else {
			out.Documentation.API = body
		}
	}

	return out, nil
}

// overview summarizes the project one chunk at a time and joins the parts.
func (g *Generator) overview(ctx context.Context, a *Analysis) (string, error) {
	moduleSummary := a.ModuleSummary()
	chunks := chunkAnalysis(a, g.budget)
	if len(chunks) <= 1 {
		return g.summarizer.SummarizeProject(ctx, marshal(a.Files), moduleSummary)
	}

	g.log.Info("analysis split for overview", "chunks", len(chunks))
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		part, err := g.summarizer.SummarizeProject(ctx, marshal(chunk), moduleSummary)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "\n\n"), nil
}

func (o *Output) warn(log *logger.Logger, msg string, err error, keysAndValues ...interface{}) {
	o.Warnings = append(o.Warnings, fmt.Sprintf("%s: %v", msg, err))
	log.Warn(msg, append(keysAndValues, "error", err)...)
}
