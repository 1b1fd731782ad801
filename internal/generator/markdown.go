package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docflow/internal/publish"
)

// WriteMarkdown writes every non-empty section of doc to dir as
// <key>.md together with a README.md that links them, and returns the
// written paths.
func WriteMarkdown(dir, projectName string, doc publish.Documentation) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var written []string
	var toc strings.Builder
	fmt.Fprintf(&toc, "# %s Documentation\n\n", projectName)

	for _, sec := range doc.Sections() {
		if sec.Empty() {
			continue
		}
		name := sec.Key() + ".md"
		content := fmt.Sprintf("# %s %s\n\n%s\n", sec.Icon, sec.Title, strings.TrimSpace(sec.Body))
		target := filepath.Join(dir, name)
		if err := os.WriteFile(target, []byte(content), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", name, err)
		}
		written = append(written, target)
		fmt.Fprintf(&toc, "- [%s](%s)\n", sec.Title, name)
	}

	index := filepath.Join(dir, "README.md")
	if err := os.WriteFile(index, []byte(toc.String()), 0644); err != nil {
		return written, fmt.Errorf("failed to write README.md: %w", err)
	}
	return append(written, index), nil
}
