package knowledge

import (
	"context"
)

// Prompt is one chat exchange sent to a language model.
type Prompt struct {
	System string
	User   string
}

// Summarizer writes the documentation sections from code analysis. The
// analysis and module arguments are pre-rendered text (JSON) produced by
// the generator.
type Summarizer interface {
	// SummarizeProject writes the project overview for one chunk of the analysis.
	SummarizeProject(ctx context.Context, analysis string, moduleSummary string) (string, error)
	// SummarizeModule writes the reference page of a single module.
	SummarizeModule(ctx context.Context, moduleName string, moduleData string) (string, error)
	// SummarizeAPI writes the API reference.
	SummarizeAPI(ctx context.Context, analysis string) (string, error)
}

// noAnalysis is returned when the model answers with an empty message.
const noAnalysis = "No analysis available."
