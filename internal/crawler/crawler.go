package crawler

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"docflow/internal/extractor"
	"docflow/internal/logger"
)

// errSizeLimit stops a walk once the total size budget is spent.
var errSizeLimit = errors.New("total size limit reached")

// Limits caps how much source is read.
type Limits struct {
	MaxFileBytes  int64
	MaxTotalBytes int64
}

// DefaultLimits allows files up to 100KB and 500KB in total.
func DefaultLimits() Limits {
	return Limits{MaxFileBytes: 100 * 1024, MaxTotalBytes: 500 * 1024}
}

// Stats reports what a scan read and skipped.
type Stats struct {
	Files      int
	Bytes      int64
	Skipped    []string
	Truncated  bool
	ParseFails int
}

// Crawler scans a directory for source files.
type Crawler struct {
	extractor   *extractor.Extractor
	ignored     []string
	excludedExt []string
	limits      Limits
	log         *logger.Logger
}

// NewCrawler creates a new crawler instance.
func NewCrawler(ext *extractor.Extractor, limits Limits, log *logger.Logger) *Crawler {
	if log == nil {
		log = logger.Nop()
	}
	return &Crawler{
		extractor:   ext,
		ignored:     []string{".git", "venv", "env", "__pycache__", "node_modules", "dist", "build", "vendor", "testdata"},
		excludedExt: []string{".pyc", ".pyo", ".pyd", ".so", ".dll", ".dylib"},
		limits:      limits,
		log:         log,
	}
}

// ScanProject walks the root directory and summarizes every supported
// file, passing each summary to onFile with its slash-separated path
// relative to root. Files are visited in lexical order. The walk stops
// quietly when the next file would exceed the total size limit.
func (c *Crawler) ScanProject(root string, onFile func(relPath string, summary *extractor.FileSummary)) (Stats, error) {
	var stats Stats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			if path != root && c.isIgnoredDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if c.isExcludedFile(d.Name()) || !c.extractor.Supports(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		size := info.Size()
		if c.limits.MaxFileBytes > 0 && size > c.limits.MaxFileBytes {
			c.log.Info("skipping large file", "path", path, "bytes", size)
			stats.Skipped = append(stats.Skipped, path)
			return nil
		}
		if c.limits.MaxTotalBytes > 0 && stats.Bytes+size > c.limits.MaxTotalBytes {
			c.log.Warn("reached total size limit, skipping remaining files", "limit", c.limits.MaxTotalBytes)
			stats.Truncated = true
			return errSizeLimit
		}

		summary, err := c.extractor.ExtractFromFile(path)
		if err != nil {
			// Log and continue instead of failing the whole scan
			c.log.Warn("failed to parse file", "path", path, "error", err)
			stats.ParseFails++
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		stats.Files++
		stats.Bytes += size
		onFile(filepath.ToSlash(rel), summary)
		return nil
	})
	if errors.Is(err, errSizeLimit) {
		err = nil
	}
	return stats, err
}

func (c *Crawler) isIgnoredDir(name string) bool {
	for _, ign := range c.ignored {
		if name == ign {
			return true
		}
	}
	return false
}

func (c *Crawler) isExcludedFile(name string) bool {
	if strings.HasSuffix(name, "_test.go") {
		return true
	}
	ext := filepath.Ext(name)
	for _, ex := range c.excludedExt {
		if ext == ex {
			return true
		}
	}
	return false
}
