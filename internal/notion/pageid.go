package notion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Page URLs end in the id, optionally after a title slug.
var pageIDPattern = regexp.MustCompile(`(?i)([0-9a-f]{32}|[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})$`)

// ParsePageID accepts a bare 32-hex id, a dashed UUID or a notion.so URL and
// returns the id in canonical 8-4-4-4-12 form.
func ParsePageID(s string) (string, error) {
	raw := strings.TrimSpace(s)
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimRight(raw, "/")
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		raw = raw[i+1:]
	}

	match := pageIDPattern.FindString(raw)
	if match == "" {
		return "", fmt.Errorf("invalid Notion page id %q: expected 32 hex characters", s)
	}
	id, err := uuid.Parse(match)
	if err != nil {
		return "", fmt.Errorf("invalid Notion page id %q: %w", s, err)
	}
	return id.String(), nil
}
