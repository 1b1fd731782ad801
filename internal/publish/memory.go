package publish

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"docflow/internal/blocks"

	"github.com/google/uuid"
)

type memNode struct {
	id       string
	block    blocks.Block // nil for child pages
	page     *memPage
	archived bool
}

type memPage struct {
	meta     RemotePage
	children []*memNode
}

// Workspace is an in-memory Remote. It backs dry runs and tests.
type Workspace struct {
	// User is returned by CurrentUser.
	User string
	// BeforeCall, when set, runs before every operation with the operation
	// name (the Remote method name) and the target id. A non-nil error is
	// returned to the caller and the operation is not applied.
	BeforeCall func(op, id string) error

	mu    sync.Mutex
	pages map[string]*memPage
	nodes map[string]*memNode
	calls map[string]int
}

func NewWorkspace() *Workspace {
	return &Workspace{
		User:  "DocFlow",
		pages: make(map[string]*memPage),
		nodes: make(map[string]*memNode),
		calls: make(map[string]int),
	}
}

// Seed creates a top-level page and returns its id.
func (w *Workspace) Seed(title string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := uuid.NewString()
	w.pages[id] = &memPage{meta: RemotePage{ID: id, Title: title}}
	return id
}

// Calls returns how many times op was invoked, failed calls included.
func (w *Workspace) Calls(op string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls[op]
}

func (w *Workspace) enter(op, id string) error {
	w.calls[op]++
	if w.BeforeCall != nil {
		return w.BeforeCall(op, id)
	}
	return nil
}

func notFound(op, id string) error {
	return &RemoteError{
		Op:      op,
		Status:  404,
		Code:    "object_not_found",
		Message: fmt.Sprintf("could not find object with ID: %s", id),
		Err:     ErrNotFound,
	}
}

func (w *Workspace) CurrentUser(ctx context.Context) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enter("CurrentUser", ""); err != nil {
		return "", err
	}
	return w.User, nil
}

func (w *Workspace) RetrievePage(ctx context.Context, pageID string) (*RemotePage, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enter("RetrievePage", pageID); err != nil {
		return nil, err
	}
	page, ok := w.pages[pageID]
	if !ok {
		return nil, notFound("RetrievePage", pageID)
	}
	meta := page.meta
	return &meta, nil
}

func (w *Workspace) CreatePage(ctx context.Context, parentID string, props PageProps) (*RemotePage, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enter("CreatePage", parentID); err != nil {
		return nil, err
	}
	parent, ok := w.pages[parentID]
	if !ok {
		return nil, notFound("CreatePage", parentID)
	}
	id := uuid.NewString()
	page := &memPage{meta: RemotePage{ID: id, Title: props.Title, Icon: props.Icon, ParentID: parentID}}
	node := &memNode{id: id, page: page}
	w.pages[id] = page
	w.nodes[id] = node
	parent.children = append(parent.children, node)
	meta := page.meta
	return &meta, nil
}

func (w *Workspace) UpdatePage(ctx context.Context, pageID string, props PageProps) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enter("UpdatePage", pageID); err != nil {
		return err
	}
	page, ok := w.pages[pageID]
	if !ok {
		return notFound("UpdatePage", pageID)
	}
	page.meta.Title = props.Title
	if props.Icon != "" {
		page.meta.Icon = props.Icon
	}
	return nil
}

func (w *Workspace) ListChildren(ctx context.Context, pageID string) ([]ChildBlock, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enter("ListChildren", pageID); err != nil {
		return nil, err
	}
	page, ok := w.pages[pageID]
	if !ok {
		return nil, notFound("ListChildren", pageID)
	}
	var out []ChildBlock
	for _, n := range page.children {
		if n.archived {
			continue
		}
		if n.page != nil {
			out = append(out, ChildBlock{ID: n.id, Kind: KindPage, Title: n.page.meta.Title})
		} else {
			out = append(out, ChildBlock{ID: n.id, Kind: KindContent})
		}
	}
	return out, nil
}

func (w *Workspace) ArchiveBlock(ctx context.Context, blockID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enter("ArchiveBlock", blockID); err != nil {
		return err
	}
	return w.remove("ArchiveBlock", blockID)
}

func (w *Workspace) DeleteBlock(ctx context.Context, blockID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enter("DeleteBlock", blockID); err != nil {
		return err
	}
	return w.remove("DeleteBlock", blockID)
}

// remove hides a block. Removing a child page drops its whole subtree.
func (w *Workspace) remove(op, blockID string) error {
	n, ok := w.nodes[blockID]
	if !ok || n.archived {
		return notFound(op, blockID)
	}
	n.archived = true
	if n.page != nil {
		w.dropPage(n.page)
	}
	return nil
}

func (w *Workspace) dropPage(page *memPage) {
	delete(w.pages, page.meta.ID)
	for _, child := range page.children {
		child.archived = true
		if child.page != nil {
			w.dropPage(child.page)
		}
	}
}

func (w *Workspace) AppendBlocks(ctx context.Context, pageID string, children []blocks.Block) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enter("AppendBlocks", pageID); err != nil {
		return err
	}
	page, ok := w.pages[pageID]
	if !ok {
		return notFound("AppendBlocks", pageID)
	}
	if len(children) > blocks.DefaultBatchSize {
		return &RemoteError{
			Op:      "AppendBlocks",
			Status:  400,
			Code:    "validation_error",
			Message: fmt.Sprintf("body.children.length should be ≤ %d, instead was %d", blocks.DefaultBatchSize, len(children)),
		}
	}
	for _, b := range children {
		n := &memNode{id: uuid.NewString(), block: b}
		w.nodes[n.id] = n
		page.children = append(page.children, n)
	}
	return nil
}

// PageTree is a snapshot of a page with its live content and child pages.
type PageTree struct {
	Page   RemotePage
	Blocks []blocks.Block
	Pages  []PageTree
}

// Tree snapshots the page pageID and everything below it.
func (w *Workspace) Tree(pageID string) (PageTree, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	page, ok := w.pages[pageID]
	if !ok {
		return PageTree{}, false
	}
	return w.snapshot(page), true
}

func (w *Workspace) snapshot(page *memPage) PageTree {
	t := PageTree{Page: page.meta}
	for _, n := range page.children {
		switch {
		case n.archived:
		case n.page != nil:
			t.Pages = append(t.Pages, w.snapshot(n.page))
		default:
			t.Blocks = append(t.Blocks, n.block)
		}
	}
	return t
}

// Outline renders the tree as indented text, one line per page or block.
func (t PageTree) Outline() string {
	var b strings.Builder
	t.outline(&b, 0)
	return b.String()
}

func (t PageTree) outline(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	title := t.Page.Title
	if t.Page.Icon != "" {
		title = t.Page.Icon + " " + title
	}
	fmt.Fprintf(b, "%s[%s] (%d blocks)\n", indent, title, len(t.Blocks))
	for _, blk := range t.Blocks {
		fmt.Fprintf(b, "%s  %s\n", indent, describe(blk))
	}
	for _, child := range t.Pages {
		child.outline(b, depth+1)
	}
}

func describe(blk blocks.Block) string {
	switch v := blk.(type) {
	case blocks.Heading:
		return strings.Repeat("#", v.Level) + " " + v.Text
	case blocks.BulletItem:
		return "- " + blocks.PlainText(v.Runs)
	case blocks.NumberItem:
		return "1. " + blocks.PlainText(v.Runs)
	case blocks.CodeBlock:
		return fmt.Sprintf("```%s (%d lines)", v.Language, strings.Count(v.Text, "\n")+1)
	case blocks.Paragraph:
		return blocks.PlainText(v.Runs)
	default:
		return fmt.Sprintf("%T", blk)
	}
}
