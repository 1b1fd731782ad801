package publish

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_remote.go -package=mocks docflow/internal/publish Remote

import (
	"context"

	"docflow/internal/blocks"
)

// BlockKind tells pages apart from leaf content when listing children.
type BlockKind int

const (
	KindContent BlockKind = iota
	KindPage
)

// ChildBlock is one direct child of a page as reported by the remote.
type ChildBlock struct {
	ID    string
	Kind  BlockKind
	Title string // set for pages only
}

// RemotePage is the metadata of a page in the workspace. The identifier is
// assigned by the remote at creation time.
type RemotePage struct {
	ID       string
	Title    string
	Icon     string
	ParentID string
}

// PageProps are the page properties DocFlow writes. An empty Icon leaves the
// current icon untouched.
type PageProps struct {
	Title string
	Icon  string
}

// Remote is the workspace protocol used by the publisher. Every call blocks
// until the remote answers.
type Remote interface {
	// CurrentUser returns the display name of the integration the credential belongs to.
	CurrentUser(ctx context.Context) (string, error)
	RetrievePage(ctx context.Context, pageID string) (*RemotePage, error)
	CreatePage(ctx context.Context, parentID string, props PageProps) (*RemotePage, error)
	UpdatePage(ctx context.Context, pageID string, props PageProps) error
	// ListChildren returns all direct children of a page, in order.
	ListChildren(ctx context.Context, pageID string) ([]ChildBlock, error)
	// ArchiveBlock soft-removes a block; DeleteBlock removes it.
	ArchiveBlock(ctx context.Context, blockID string) error
	DeleteBlock(ctx context.Context, blockID string) error
	AppendBlocks(ctx context.Context, pageID string, children []blocks.Block) error
}
