package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

type language struct {
	name      string
	extractor LanguageExtractor
	query     *sitter.Query
}

// Extractor orchestrates the extraction process using language-specific extractors.
type Extractor struct {
	byExt map[string]*language
}

var extensions = map[string]string{
	"python": ".py",
	"go":     ".go",
}

// NewExtractor creates an extractor for the given languages. With no
// arguments every supported language is enabled.
func NewExtractor(langs ...string) (*Extractor, error) {
	if len(langs) == 0 {
		langs = []string{"python", "go"}
	}
	e := &Extractor{byExt: make(map[string]*language)}
	for _, lang := range langs {
		var langExt LanguageExtractor
		switch lang {
		case "python":
			langExt = &PythonExtractor{}
		case "go":
			langExt = &GoExtractor{}
		default:
			return nil, fmt.Errorf("unsupported language: %s", lang)
		}
		query, err := sitter.NewQuery([]byte(langExt.GetQuery()), langExt.GetLanguage())
		if err != nil {
			return nil, fmt.Errorf("failed to create %s query: %w", lang, err)
		}
		e.byExt[extensions[lang]] = &language{name: lang, extractor: langExt, query: query}
	}
	return e, nil
}

// Supports reports whether path has an extension handled by this extractor.
func (e *Extractor) Supports(path string) bool {
	_, ok := e.byExt[filepath.Ext(path)]
	return ok
}

// Extensions lists the handled file extensions.
func (e *Extractor) Extensions() []string {
	out := make([]string, 0, len(e.byExt))
	for ext := range e.byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// ExtractFromFile parses a single source file and summarizes it.
func (e *Extractor) ExtractFromFile(path string) (*FileSummary, error) {
	sourceCode, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return e.ExtractSource(path, sourceCode)
}

// ExtractSource summarizes sourceCode; path only selects the language.
func (e *Extractor) ExtractSource(path string, sourceCode []byte) (*FileSummary, error) {
	lang, ok := e.byExt[filepath.Ext(path)]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang.extractor.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	root := tree.RootNode()

	summary := &FileSummary{
		Path:      path,
		Language:  lang.name,
		Classes:   []ClassInfo{},
		Functions: []FunctionInfo{},
		Imports:   []ImportInfo{},
	}
	if root.HasError() {
		summary.Error = "Syntax error in file"
	}

	qc := sitter.NewQueryCursor()
	qc.Exec(lang.query, root)
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			lang.extractor.Collect(lang.query.CaptureNameForId(c.Index), c.Node, sourceCode, summary)
		}
	}
	lang.extractor.Finish(root, sourceCode, summary)

	return summary, nil
}
