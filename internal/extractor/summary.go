package extractor

import sitter "github.com/smacker/go-tree-sitter"

// FileSummary is the structural outline of one source file: its
// documentation, top-level classes and functions, and imports.
type FileSummary struct {
	Path      string         `json:"-"`
	Language  string         `json:"-"`
	Docstring string         `json:"docstring,omitempty"`
	Classes   []ClassInfo    `json:"classes"`
	Functions []FunctionInfo `json:"functions"`
	Imports   []ImportInfo   `json:"imports"`
	// Error is set when the file could not be parsed cleanly.
	Error string `json:"error,omitempty"`
}

// ClassInfo describes a class, or a Go type together with its methods.
type ClassInfo struct {
	Name      string         `json:"name"`
	Kind      string         `json:"kind,omitempty"` // struct, interface, type; empty for Python classes
	Methods   []FunctionInfo `json:"methods"`
	Docstring string         `json:"docstring,omitempty"`
}

type FunctionInfo struct {
	Name      string `json:"name"`
	Args      []Arg  `json:"args"`
	Returns   string `json:"returns,omitempty"`
	Docstring string `json:"docstring,omitempty"`
}

type Arg struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// ImportInfo is one import statement. Kind is "import" or "import_from".
type ImportInfo struct {
	Kind   string   `json:"type"`
	Module string   `json:"module,omitempty"`
	Names  []string `json:"names"`
}

// Essentials keeps only names and docstrings. It is used when a full
// summary is too large to hand to a language model.
func (s *FileSummary) Essentials() *FileSummary {
	out := &FileSummary{
		Path:      s.Path,
		Language:  s.Language,
		Docstring: s.Docstring,
		Classes:   make([]ClassInfo, 0, len(s.Classes)),
		Functions: make([]FunctionInfo, 0, len(s.Functions)),
	}
	for _, c := range s.Classes {
		out.Classes = append(out.Classes, ClassInfo{Name: c.Name, Docstring: c.Docstring})
	}
	for _, f := range s.Functions {
		out.Functions = append(out.Functions, FunctionInfo{Name: f.Name, Docstring: f.Docstring})
	}
	return out
}

// Empty reports whether nothing was extracted from the file.
func (s *FileSummary) Empty() bool {
	return s.Docstring == "" && len(s.Classes) == 0 && len(s.Functions) == 0 && len(s.Imports) == 0 && s.Error == ""
}

// LanguageExtractor defines the interface that each language parser must implement.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	// Collect adds the node captured under captureName to summary.
	Collect(captureName string, node *sitter.Node, sourceCode []byte, summary *FileSummary)
	// Finish runs once after all captures, with the root of the tree.
	Finish(root *sitter.Node, sourceCode []byte, summary *FileSummary)
}
