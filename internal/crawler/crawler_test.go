package crawler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docflow/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func scan(t *testing.T, root string, limits Limits) (map[string]*extractor.FileSummary, []string, Stats) {
	t.Helper()
	ext, err := extractor.NewExtractor()
	require.NoError(t, err)

	files := make(map[string]*extractor.FileSummary)
	var order []string
	stats, err := NewCrawler(ext, limits, nil).ScanProject(root, func(rel string, s *extractor.FileSummary) {
		files[rel] = s
		order = append(order, rel)
	})
	require.NoError(t, err)
	return files, order, stats
}

func TestCrawler_ScanProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.py", "def main():\n    pass\n")
	writeFile(t, root, "api/routes.py", "class Router:\n    pass\n")
	writeFile(t, root, "pkg/store.go", "package pkg\n\nfunc Open() {}\n")
	writeFile(t, root, "pkg/store_test.go", "package pkg\n")
	writeFile(t, root, "venv/lib/site.py", "x = 1\n")
	writeFile(t, root, "node_modules/x/index.py", "x = 1\n")
	writeFile(t, root, "__pycache__/main.cpython.pyc", "junk")
	writeFile(t, root, "README.md", "# readme\n")

	files, order, stats := scan(t, root, DefaultLimits())

	assert.Equal(t, []string{"api/routes.py", "main.py", "pkg/store.go"}, order)
	assert.Equal(t, 3, stats.Files)
	assert.False(t, stats.Truncated)
	require.Contains(t, files, "api/routes.py")
	assert.Equal(t, "Router", files["api/routes.py"].Classes[0].Name)
	assert.Equal(t, "Open", files["pkg/store.go"].Functions[0].Name)
}

func TestCrawler_SizeLimits(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "a = 1\n")
	writeFile(t, root, "b.py", "# "+strings.Repeat("x", 200)+"\n")
	writeFile(t, root, "c.py", "c = 1\n")
	writeFile(t, root, "d.py", "d = 1\n")

	t.Run("large files are skipped", func(t *testing.T) {
		_, order, stats := scan(t, root, Limits{MaxFileBytes: 100})
		assert.Equal(t, []string{"a.py", "c.py", "d.py"}, order)
		assert.Len(t, stats.Skipped, 1)
	})

	t.Run("total budget stops the walk", func(t *testing.T) {
		_, order, stats := scan(t, root, Limits{MaxFileBytes: 100, MaxTotalBytes: 12})
		assert.Equal(t, []string{"a.py", "c.py"}, order)
		assert.True(t, stats.Truncated)
		assert.Equal(t, int64(12), stats.Bytes)
	})
}
