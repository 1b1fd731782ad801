package notion

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"docflow/internal/blocks"
	"docflow/internal/publish"

	"github.com/jomei/notionapi"
)

const listPageSize = 100

// Client implements publish.Remote on top of the Notion REST API.
type Client struct {
	api *notionapi.Client
}

// NewClient creates a Notion client authenticated with an integration token.
func NewClient(token string, timeout time.Duration) *Client {
	httpClient := &http.Client{Timeout: timeout}
	return &Client{
		api: notionapi.NewClient(notionapi.Token(token), notionapi.WithHTTPClient(httpClient)),
	}
}

var _ publish.Remote = (*Client)(nil)

func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	user, err := c.api.User.Me(ctx)
	if err != nil {
		return "", wrapError("retrieve current user", err)
	}
	return user.Name, nil
}

func (c *Client) RetrievePage(ctx context.Context, pageID string) (*publish.RemotePage, error) {
	page, err := c.api.Page.Get(ctx, notionapi.PageID(pageID))
	if err != nil {
		return nil, wrapError("retrieve page", err)
	}
	return toRemotePage(page), nil
}

func (c *Client) CreatePage(ctx context.Context, parentID string, props publish.PageProps) (*publish.RemotePage, error) {
	page, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(parentID),
		},
		Properties: titleProperty(props.Title),
		Icon:       emojiIcon(props.Icon),
	})
	if err != nil {
		return nil, wrapError("create page", err)
	}
	return toRemotePage(page), nil
}

func (c *Client) UpdatePage(ctx context.Context, pageID string, props publish.PageProps) error {
	_, err := c.api.Page.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
		Properties: titleProperty(props.Title),
		Icon:       emojiIcon(props.Icon),
	})
	if err != nil {
		return wrapError("update page", err)
	}
	return nil
}

// ListChildren follows the cursor until every child has been read.
func (c *Client) ListChildren(ctx context.Context, pageID string) ([]publish.ChildBlock, error) {
	var out []publish.ChildBlock
	pagination := &notionapi.Pagination{PageSize: listPageSize}
	for {
		resp, err := c.api.Block.GetChildren(ctx, notionapi.BlockID(pageID), pagination)
		if err != nil {
			return nil, wrapError("list block children", err)
		}
		for _, b := range resp.Results {
			out = append(out, toChildBlock(b))
		}
		if !resp.HasMore || resp.NextCursor == "" {
			return out, nil
		}
		pagination = &notionapi.Pagination{StartCursor: notionapi.Cursor(resp.NextCursor), PageSize: listPageSize}
	}
}

// ArchiveBlock moves a block to the trash. The API's delete endpoint only
// sets the archived flag, so archiving and deleting share it.
func (c *Client) ArchiveBlock(ctx context.Context, blockID string) error {
	if _, err := c.api.Block.Delete(ctx, notionapi.BlockID(blockID)); err != nil {
		return wrapError("archive block", err)
	}
	return nil
}

func (c *Client) DeleteBlock(ctx context.Context, blockID string) error {
	if _, err := c.api.Block.Delete(ctx, notionapi.BlockID(blockID)); err != nil {
		return wrapError("delete block", err)
	}
	return nil
}

func (c *Client) AppendBlocks(ctx context.Context, pageID string, children []blocks.Block) error {
	payload, err := toNotionBlocks(children)
	if err != nil {
		return &publish.RemoteError{Op: "append blocks", Message: err.Error(), Err: err}
	}
	_, err = c.api.Block.AppendChildren(ctx, notionapi.BlockID(pageID), &notionapi.AppendBlockChildrenRequest{
		Children: payload,
	})
	if err != nil {
		return wrapError("append blocks", err)
	}
	return nil
}

func toRemotePage(page *notionapi.Page) *publish.RemotePage {
	rp := &publish.RemotePage{
		ID:       string(page.ID),
		Title:    pageTitle(page),
		ParentID: string(page.Parent.PageID),
	}
	if page.Icon != nil && page.Icon.Emoji != nil {
		rp.Icon = string(*page.Icon.Emoji)
	}
	return rp
}

func toChildBlock(b notionapi.Block) publish.ChildBlock {
	child := publish.ChildBlock{ID: string(b.GetID()), Kind: publish.KindContent}
	if b.GetType() != notionapi.BlockTypeChildPage {
		return child
	}
	child.Kind = publish.KindPage
	switch v := b.(type) {
	case *notionapi.ChildPageBlock:
		child.Title = v.ChildPage.Title
	case notionapi.ChildPageBlock:
		child.Title = v.ChildPage.Title
	}
	return child
}

// wrapError maps API failures onto the publish error sentinels.
func wrapError(op string, err error) error {
	re := &publish.RemoteError{Op: op, Err: err}

	var apiErr *notionapi.Error
	structured := errors.As(err, &apiErr)
	if structured {
		re.Status = apiErr.Status
		re.Code = string(apiErr.Code)
		re.Message = apiErr.Message
	}

	var limited *notionapi.RateLimitedError
	rateLimited := errors.As(err, &limited) || (!structured && mentionsRateLimit(err))

	switch {
	case re.Status == http.StatusTooManyRequests || re.Code == "rate_limited" || rateLimited:
		re.Err = errors.Join(publish.ErrRateLimited, err)
	case re.Status == http.StatusUnauthorized || re.Code == "unauthorized":
		re.Err = errors.Join(publish.ErrUnauthorized, err)
	case re.Status == http.StatusNotFound || re.Code == "object_not_found":
		re.Err = errors.Join(publish.ErrNotFound, err)
	}
	return re
}

// mentionsRateLimit catches rate-limit failures that reach us without any
// structured error, for example from a wrapping transport.
func mentionsRateLimit(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "rate_limited") || strings.Contains(msg, "too many requests")
}
