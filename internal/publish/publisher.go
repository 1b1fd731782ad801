package publish

import (
	"context"
	"fmt"

	"docflow/internal/blocks"
	"docflow/internal/logger"
)

// Phase is the reconciliation state of a run. Runs only move forward.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseRootPrepared
	PhaseSectionsPublished
	PhaseIndexBuilt
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseRootPrepared:
		return "root_prepared"
	case PhaseSectionsPublished:
		return "sections_published"
	case PhaseIndexBuilt:
		return "index_built"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Options tune a Publisher. Zero values fall back to defaults.
type Options struct {
	ProjectName string
	BatchSize   int
	Retry       *RetryPolicy
	Logger      *logger.Logger
}

// Result is the outcome of one reconciliation run.
type Result struct {
	Index    *PageIndex
	Warnings []string
	Phase    Phase
}

// Publisher reconciles a root page with a set of documentation sections:
// it clears what a previous run left behind, publishes one child page per
// section and writes an index document onto the root.
type Publisher struct {
	remote      Remote
	rootID      string
	projectName string
	batchSize   int
	retry       RetryPolicy
	log         *logger.Logger
}

func NewPublisher(remote Remote, rootID string, opts Options) *Publisher {
	p := &Publisher{
		remote:      remote,
		rootID:      rootID,
		projectName: opts.ProjectName,
		batchSize:   opts.BatchSize,
		retry:       DefaultRetryPolicy(),
		log:         opts.Logger,
	}
	if p.projectName == "" {
		p.projectName = "DocFlow"
	}
	// The API rejects appends of more than DefaultBatchSize blocks.
	if p.batchSize <= 0 || p.batchSize > blocks.DefaultBatchSize {
		p.batchSize = blocks.DefaultBatchSize
	}
	if opts.Retry != nil {
		p.retry = *opts.Retry
	}
	if p.log == nil {
		p.log = logger.Nop()
	}
	return p
}

// runState is owned by a single Publish call.
type runState struct {
	phase     Phase
	index     *PageIndex
	published map[string]bool
	modules   []string
	warnings  []string
}

func newRunState() *runState {
	return &runState{
		index:     NewPageIndex(),
		published: make(map[string]bool),
	}
}

func (r *runState) advance(next Phase) {
	if next > r.phase {
		r.phase = next
	}
}

func (r *runState) result() *Result {
	return &Result{Index: r.index, Warnings: r.warnings, Phase: r.phase}
}

func (p *Publisher) warn(run *runState, msg string, err error, keysAndValues ...interface{}) {
	run.warnings = append(run.warnings, fmt.Sprintf("%s: %v", msg, err))
	p.log.Warn(msg, append(keysAndValues, "error", err)...)
}

// Verify checks the credential and that the root page is shared with the
// integration. It never mutates the workspace.
func (p *Publisher) Verify(ctx context.Context) error {
	user, err := p.remote.CurrentUser(ctx)
	if err != nil {
		return &AccessError{Reason: "invalid Notion API token", Steps: tokenSteps, Err: err}
	}
	p.log.Debug("credential accepted", "integration", user)

	if _, err := p.remote.RetrievePage(ctx, p.rootID); err != nil {
		return &AccessError{Reason: "could not access the Notion page", PageID: p.rootID, Steps: pageAccessSteps, Err: err}
	}
	return nil
}

// Publish runs one reconciliation. Section-level failures are reported as
// warnings in the result. The only error is ErrRootPreparation, in which
// case the returned index is empty.
func (p *Publisher) Publish(ctx context.Context, sections []Section) (*Result, error) {
	run := newRunState()

	if err := p.prepareRoot(ctx, run); err != nil {
		p.log.Error("could not prepare root page", "root", p.rootID, "error", err)
		return &Result{Index: NewPageIndex(), Warnings: run.warnings, Phase: run.phase},
			fmt.Errorf("%w: %w", ErrRootPreparation, err)
	}
	run.advance(PhaseRootPrepared)

	for _, sec := range sections {
		p.publishSection(ctx, run, sec)
	}
	run.advance(PhaseSectionsPublished)

	if err := p.appendDocument(ctx, p.rootID, p.indexDocument(run)); err != nil {
		p.warn(run, "could not write index page", err, "root", p.rootID)
	}
	run.advance(PhaseIndexBuilt)

	run.advance(PhaseDone)
	p.log.Info("documentation published", "pages", run.index.Len(), "warnings", len(run.warnings))
	return run.result(), nil
}

// prepareRoot removes child pages of earlier runs, archives the root's own
// content and retitles it.
func (p *Publisher) prepareRoot(ctx context.Context, run *runState) error {
	children, err := p.remote.ListChildren(ctx, p.rootID)
	if err != nil {
		return fmt.Errorf("failed to list root children: %w", err)
	}

	var content []ChildBlock
	for _, child := range children {
		if child.Kind != KindPage {
			content = append(content, child)
			continue
		}
		p.log.Info("deleting child page", "title", child.Title, "id", child.ID)
		if err := p.retry.Do(ctx, func(ctx context.Context) error {
			return p.remote.DeleteBlock(ctx, child.ID)
		}); err != nil {
			p.warn(run, "could not delete child page", err, "id", child.ID)
		}
	}
	p.archiveAll(ctx, run, content)

	props := PageProps{Title: p.projectName + " Documentation", Icon: rootIcon}
	if err := p.remote.UpdatePage(ctx, p.rootID, props); err != nil {
		return fmt.Errorf("failed to update root page: %w", err)
	}
	run.index.Set(KeyMain, p.rootID)
	return nil
}

func (p *Publisher) archiveAll(ctx context.Context, run *runState, content []ChildBlock) {
	for _, child := range content {
		if err := p.retry.Do(ctx, func(ctx context.Context) error {
			return p.remote.ArchiveBlock(ctx, child.ID)
		}); err != nil {
			p.warn(run, "could not archive block", err, "id", child.ID)
		}
	}
}

// clearPage archives every non-page block on pageID.
func (p *Publisher) clearPage(ctx context.Context, run *runState, pageID string) {
	children, err := p.remote.ListChildren(ctx, pageID)
	if err != nil {
		p.warn(run, "could not list page content", err, "page", pageID)
		return
	}
	var content []ChildBlock
	for _, child := range children {
		if child.Kind == KindContent {
			content = append(content, child)
		}
	}
	p.archiveAll(ctx, run, content)
}

func (p *Publisher) publishSection(ctx context.Context, run *runState, sec Section) {
	key := sec.Key()
	log := p.log.With("section", key)

	if sec.Empty() {
		log.Debug("skipping empty section")
		return
	}
	if run.published[key] {
		log.Debug("skipping section published earlier in this run")
		return
	}

	if _, err := p.remote.RetrievePage(ctx, p.rootID); err != nil {
		p.warn(run, "cannot read parent page, skipping section", err, "section", key)
		return
	}

	page, err := p.remote.CreatePage(ctx, p.rootID, PageProps{Title: sec.Title, Icon: sec.Icon})
	if err != nil {
		p.warn(run, "could not create page", err, "section", key)
		return
	}
	// Creation does not always apply the title, so set it again.
	if err := p.remote.UpdatePage(ctx, page.ID, PageProps{Title: sec.Title}); err != nil {
		p.warn(run, "could not set page title", err, "section", key, "page", page.ID)
		return
	}
	p.clearPage(ctx, run, page.ID)

	body := blocks.NewLinkFilter().Filter(sec.Body)
	if err := p.appendDocument(ctx, page.ID, blocks.Translate(body)); err != nil {
		p.warn(run, "could not write page content", err, "section", key, "page", page.ID)
		return
	}

	run.index.Set(key, page.ID)
	run.published[key] = true
	if sec.Category == CategoryModule {
		run.modules = append(run.modules, sec.Name)
	}
	log.Info("published section", "title", sec.Title, "page", page.ID)
}

// appendDocument writes doc to pageID in request-sized batches.
func (p *Publisher) appendDocument(ctx context.Context, pageID string, doc []blocks.Block) error {
	batches := blocks.Chunk(doc, p.batchSize)
	for i, batch := range batches {
		if err := p.remote.AppendBlocks(ctx, pageID, batch); err != nil {
			return fmt.Errorf("failed to append batch %d/%d: %w", i+1, len(batches), err)
		}
	}
	return nil
}
