package storage

import (
	"context"
	"errors"
	"time"

	"docflow/internal/publish"
)

var ErrNoRuns = errors.New("no recorded runs")

// Run is one recorded documentation run.
type Run struct {
	ID         string
	Root       string
	Mode       string
	Phase      string
	StartedAt  time.Time
	FinishedAt time.Time // zero while the run is in progress
	Warnings   []string
	Pages      int
}

// PageRecord is one published page of a run.
type PageRecord struct {
	Key    string
	PageID string
}

// Ledger records what each run generated and where it was published.
type Ledger interface {
	// BeginRun opens a new run for the project at root.
	BeginRun(ctx context.Context, root, mode string) (*Run, error)

	// SaveDocumentation stores the generated sections of a run.
	SaveDocumentation(ctx context.Context, runID string, doc publish.Documentation) error

	// SavePages stores the page index a publish produced.
	SavePages(ctx context.Context, runID string, index *publish.PageIndex) error

	// FinishRun records the final phase and warnings of a run.
	FinishRun(ctx context.Context, runID, phase string, warnings []string) error

	// LatestDocumentation returns the newest stored documentation for root.
	LatestDocumentation(ctx context.Context, root string) (*publish.Documentation, string, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// RunPages returns the pages published by a run in index order.
	RunPages(ctx context.Context, runID string) ([]PageRecord, error)

	Close() error
}
