package blocks

import (
	"regexp"
	"strings"
)

const (
	workspaceURLPrefix = "https://www.notion.so/"
	moduleLinkPrefix   = "[Module:"
	overviewSelfLink   = "[1. Project Overview]"
)

var workspaceURLPattern = regexp.MustCompile(`https://www\.notion\.so/[a-zA-Z0-9]+`)

// LinkFilter drops repeated module links and self-referencing table of
// contents entries from generated text. A filter remembers every module link
// it has passed, so use one filter per document.
type LinkFilter struct {
	seen map[string]struct{}
}

// NewLinkFilter returns a filter with an empty seen set.
func NewLinkFilter() *LinkFilter {
	return &LinkFilter{seen: make(map[string]struct{})}
}

// Filter returns text with duplicate module-link bullets and overview
// self-links removed. Other lines are kept verbatim.
func (f *LinkFilter) Filter(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if f.isModuleLink(line) {
			if url := workspaceURLPattern.FindString(line); url != "" {
				if _, dup := f.seen[url]; dup {
					continue
				}
				f.seen[url] = struct{}{}
			}
		}
		if strings.Contains(line, overviewSelfLink) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

func (f *LinkFilter) isModuleLink(line string) bool {
	return strings.Contains(line, workspaceURLPrefix) &&
		strings.HasPrefix(strings.TrimSpace(line), moduleLinkPrefix)
}
