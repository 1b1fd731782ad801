package publish

import (
	"context"

	"docflow/internal/blocks"

	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond matches the average request rate Notion allows per integration.
const DefaultRequestsPerSecond = 3

type pacedRemote struct {
	next    Remote
	limiter *rate.Limiter
}

// WithRateLimit returns a Remote that waits on limiter before every call.
func WithRateLimit(next Remote, limiter *rate.Limiter) Remote {
	if limiter == nil {
		return next
	}
	return &pacedRemote{next: next, limiter: limiter}
}

// NewLimiter builds a limiter allowing rps calls per second with no burst.
// A non-positive rps disables pacing.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

func (p *pacedRemote) CurrentUser(ctx context.Context) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.next.CurrentUser(ctx)
}

func (p *pacedRemote) RetrievePage(ctx context.Context, pageID string) (*RemotePage, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.next.RetrievePage(ctx, pageID)
}

func (p *pacedRemote) CreatePage(ctx context.Context, parentID string, props PageProps) (*RemotePage, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.next.CreatePage(ctx, parentID, props)
}

func (p *pacedRemote) UpdatePage(ctx context.Context, pageID string, props PageProps) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	return p.next.UpdatePage(ctx, pageID, props)
}

func (p *pacedRemote) ListChildren(ctx context.Context, pageID string) ([]ChildBlock, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.next.ListChildren(ctx, pageID)
}

func (p *pacedRemote) ArchiveBlock(ctx context.Context, blockID string) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	return p.next.ArchiveBlock(ctx, blockID)
}

func (p *pacedRemote) DeleteBlock(ctx context.Context, blockID string) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	return p.next.DeleteBlock(ctx, blockID)
}

func (p *pacedRemote) AppendBlocks(ctx context.Context, pageID string, children []blocks.Block) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	return p.next.AppendBlocks(ctx, pageID, children)
}
