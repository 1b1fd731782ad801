package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// PythonExtractor implements LanguageExtractor for Python. Classes are
// collected at any depth; functions only at module level.
type PythonExtractor struct{}

func (p *PythonExtractor) GetLanguage() *sitter.Language {
	return python.GetLanguage()
}

func (p *PythonExtractor) GetQuery() string {
	return `
		(class_definition) @class
		(module (function_definition) @func)
		(module (decorated_definition definition: (function_definition) @func))
		(import_statement) @import
		(import_from_statement) @import
	`
}

func (p *PythonExtractor) Collect(captureName string, node *sitter.Node, sourceCode []byte, summary *FileSummary) {
	switch captureName {
	case "class":
		if c, ok := p.extractClass(node, sourceCode); ok {
			summary.Classes = append(summary.Classes, c)
		}
	case "func":
		if f, ok := p.extractFunction(node, sourceCode); ok {
			summary.Functions = append(summary.Functions, f)
		}
	case "import":
		summary.Imports = append(summary.Imports, p.extractImport(node, sourceCode))
	}
}

func (p *PythonExtractor) Finish(root *sitter.Node, sourceCode []byte, summary *FileSummary) {
	summary.Docstring = blockDocstring(root, sourceCode)
}

func (p *PythonExtractor) extractClass(node *sitter.Node, sourceCode []byte) (ClassInfo, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ClassInfo{}, false
	}
	info := ClassInfo{Name: nameNode.Content(sourceCode), Methods: []FunctionInfo{}}

	body := node.ChildByFieldName("body")
	if body == nil {
		return info, true
	}
	info.Docstring = blockDocstring(body, sourceCode)

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "decorated_definition" {
			child = child.ChildByFieldName("definition")
		}
		if child == nil || child.Type() != "function_definition" {
			continue
		}
		if m, ok := p.extractFunction(child, sourceCode); ok {
			info.Methods = append(info.Methods, m)
		}
	}
	return info, true
}

func (p *PythonExtractor) extractFunction(node *sitter.Node, sourceCode []byte) (FunctionInfo, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return FunctionInfo{}, false
	}
	info := FunctionInfo{Name: nameNode.Content(sourceCode), Args: []Arg{}}
	if params := node.ChildByFieldName("parameters"); params != nil {
		info.Args = p.extractArgs(params, sourceCode)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		info.Returns = ret.Content(sourceCode)
	}
	if body := node.ChildByFieldName("body"); body != nil {
		info.Docstring = blockDocstring(body, sourceCode)
	}
	return info, true
}

// extractArgs lists the positional parameters. Splat parameters and
// keyword-only markers are left out.
func (p *PythonExtractor) extractArgs(params *sitter.Node, sourceCode []byte) []Arg {
	args := []Arg{}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		var arg Arg
		switch param.Type() {
		case "identifier":
			arg.Name = param.Content(sourceCode)
		case "typed_parameter":
			first := param.NamedChild(0)
			if first == nil || first.Type() != "identifier" {
				continue
			}
			arg.Name = first.Content(sourceCode)
			if t := param.ChildByFieldName("type"); t != nil {
				arg.Type = t.Content(sourceCode)
			}
		case "default_parameter", "typed_default_parameter":
			name := param.ChildByFieldName("name")
			if name == nil || name.Type() != "identifier" {
				continue
			}
			arg.Name = name.Content(sourceCode)
			if t := param.ChildByFieldName("type"); t != nil {
				arg.Type = t.Content(sourceCode)
			}
		default:
			continue
		}
		args = append(args, arg)
	}
	return args
}

func (p *PythonExtractor) extractImport(node *sitter.Node, sourceCode []byte) ImportInfo {
	info := ImportInfo{Kind: "import", Names: []string{}}

	var module *sitter.Node
	if node.Type() == "import_from_statement" {
		info.Kind = "import_from"
		if module = node.ChildByFieldName("module_name"); module != nil {
			info.Module = module.Content(sourceCode)
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if module != nil && child.StartByte() == module.StartByte() && child.EndByte() == module.EndByte() {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			info.Names = append(info.Names, child.Content(sourceCode))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				info.Names = append(info.Names, name.Content(sourceCode))
			}
		case "wildcard_import":
			info.Names = append(info.Names, "*")
		}
	}
	return info
}

// blockDocstring returns the docstring of a module or block: a string
// literal that is its first statement.
func blockDocstring(block *sitter.Node, sourceCode []byte) string {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		stmt := block.NamedChild(i)
		if stmt.Type() == "comment" {
			continue
		}
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
			return ""
		}
		str := stmt.NamedChild(0)
		if str.Type() != "string" {
			return ""
		}
		return cleanDocstring(str.Content(sourceCode))
	}
	return ""
}

// cleanDocstring strips the quotes and common indentation from a string
// literal.
func cleanDocstring(literal string) string {
	s := strings.TrimLeft(literal, "rRuUbBfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			s = s[len(q) : len(s)-len(q)]
			break
		}
	}

	lines := strings.Split(s, "\n")
	indent := -1
	for _, l := range lines[1:] {
		trimmed := strings.TrimLeft(l, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(l) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}
	lines[0] = strings.TrimSpace(lines[0])
	for i := 1; i < len(lines); i++ {
		if indent > 0 && len(lines[i]) >= indent {
			lines[i] = lines[i][indent:]
		}
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
