// Package sample is a fixture for the Go extractor.
package sample

import (
	"context"
	"fmt"
)

// Version is the application version.
const Version = "1.0.0"

// Page is a published page.
type Page struct {
	ID    string
	Title string `json:"title"`
}

// Store persists pages.
type Store interface {
	fmt.Stringer
	// Save writes a page.
	Save(ctx context.Context, p *Page) error
	Close()
}

// NewPage creates a page.
func NewPage(id, title string) *Page {
	return &Page{ID: id, Title: title}
}

// Rename changes the title.
func (p *Page) Rename(title string) {
	p.Title = title
}

func join(parts ...string) string {
	return fmt.Sprint(parts)
}
