package generator

import (
	"encoding/json"
	"path"
	"sort"
	"strings"

	"docflow/internal/extractor"
)

// Analysis holds the structural summaries of a scanned project, keyed by
// slash-separated path relative to the project root.
type Analysis struct {
	Files map[string]*extractor.FileSummary
}

func NewAnalysis() *Analysis {
	return &Analysis{Files: make(map[string]*extractor.FileSummary)}
}

func (a *Analysis) Add(relPath string, summary *extractor.FileSummary) {
	if summary == nil {
		return
	}
	a.Files[path.Clean(strings.ReplaceAll(relPath, "\\", "/"))] = summary
}

func (a *Analysis) Len() int {
	return len(a.Files)
}

// Paths returns the file paths in sorted order.
func (a *Analysis) Paths() []string {
	out := make([]string, 0, len(a.Files))
	for p := range a.Files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Module is a group of files sharing a top-level directory.
type Module struct {
	Name  string
	Files []string
}

var skippedModules = map[string]bool{
	"__pycache__": true,
	"venv":        true,
	".git":        true,
	"build":       true,
	"dist":        true,
}

// ModuleName maps a relative path to its module: the first directory, or a
// fixed bucket for files at the project root.
func ModuleName(relPath string) string {
	first, _, nested := strings.Cut(relPath, "/")
	if nested {
		return first
	}
	switch strings.ToLower(path.Ext(relPath)) {
	case ".py", ".go", ".js", ".ts":
		return "core"
	case ".md", ".txt":
		return "documentation"
	default:
		return "other"
	}
}

// Modules groups the analysed files by module, sorted by module name.
func (a *Analysis) Modules() []Module {
	byName := make(map[string]*Module)
	var names []string
	for _, p := range a.Paths() {
		name := ModuleName(p)
		if skippedModules[name] {
			continue
		}
		m, ok := byName[name]
		if !ok {
			m = &Module{Name: name}
			byName[name] = m
			names = append(names, name)
		}
		m.Files = append(m.Files, p)
	}
	sort.Strings(names)

	out := make([]Module, 0, len(names))
	for _, n := range names {
		out = append(out, *byName[n])
	}
	return out
}

var apiMarkers = []string{"api", "route", "endpoint", "controller"}

// APIFiles returns the files whose path suggests they define an API surface.
func (a *Analysis) APIFiles() []string {
	var out []string
	for _, p := range a.Paths() {
		lower := strings.ToLower(p)
		for _, marker := range apiMarkers {
			if strings.Contains(lower, marker) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Subset returns the summaries of the given paths.
func (a *Analysis) Subset(paths []string) map[string]*extractor.FileSummary {
	out := make(map[string]*extractor.FileSummary, len(paths))
	for _, p := range paths {
		if s, ok := a.Files[p]; ok {
			out[p] = s
		}
	}
	return out
}

type classDigest struct {
	Name    string   `json:"name"`
	Methods []string `json:"methods"`
	Purpose string   `json:"purpose"`
}

type functionDigest struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
}

type moduleDigest struct {
	Files     []string         `json:"files"`
	Classes   []classDigest    `json:"classes"`
	Functions []functionDigest `json:"functions"`
}

// ModuleSummary condenses every module to file names plus class and function
// names with a short purpose line. It is the cross-module context given to
// the overview prompt.
func (a *Analysis) ModuleSummary() string {
	digest := make(map[string]moduleDigest)
	for _, m := range a.Modules() {
		d := moduleDigest{
			Files:     make([]string, 0, len(m.Files)),
			Classes:   []classDigest{},
			Functions: []functionDigest{},
		}
		for _, p := range m.Files {
			d.Files = append(d.Files, path.Base(p))
			s := a.Files[p]
			for _, c := range s.Classes {
				methods := make([]string, 0, len(c.Methods))
				for _, fn := range c.Methods {
					methods = append(methods, fn.Name)
				}
				d.Classes = append(d.Classes, classDigest{Name: c.Name, Methods: methods, Purpose: purpose(c.Docstring)})
			}
			for _, fn := range s.Functions {
				d.Functions = append(d.Functions, functionDigest{Name: fn.Name, Purpose: purpose(fn.Docstring)})
			}
		}
		digest[m.Name] = d
	}
	return marshal(digest)
}

func purpose(doc string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return "No description"
	}
	r := []rune(doc)
	if len(r) > 100 {
		r = r[:100]
	}
	return string(r) + "..."
}

func marshal(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
