package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// GoExtractor implements LanguageExtractor for Go. Named types become
// classes and methods are attached to their receiver type.
type GoExtractor struct{}

func (g *GoExtractor) GetLanguage() *sitter.Language {
	return golang.GetLanguage()
}

func (g *GoExtractor) GetQuery() string {
	return `
		(function_declaration) @func
		(type_spec) @type
		(import_spec) @import
	`
}

func (g *GoExtractor) Collect(captureName string, node *sitter.Node, sourceCode []byte, summary *FileSummary) {
	switch captureName {
	case "func":
		if f, ok := g.extractFunction(node, sourceCode); ok {
			summary.Functions = append(summary.Functions, f)
		}
	case "type":
		if c, ok := g.extractType(node, sourceCode); ok {
			summary.Classes = append(summary.Classes, c)
		}
	case "import":
		if pathNode := node.ChildByFieldName("path"); pathNode != nil {
			path := strings.Trim(pathNode.Content(sourceCode), "\"`")
			summary.Imports = append(summary.Imports, ImportInfo{Kind: "import", Names: []string{path}})
		}
	}
}

// Finish attaches methods to their receiver types and reads the package
// doc comment. Methods whose receiver is declared in another file are
// listed as Type.Method functions.
func (g *GoExtractor) Finish(root *sitter.Node, sourceCode []byte, summary *FileSummary) {
	byName := make(map[string]int, len(summary.Classes))
	for i, c := range summary.Classes {
		byName[c.Name] = i
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		switch node.Type() {
		case "package_clause":
			summary.Docstring = g.extractDocComment(node, sourceCode)
		case "method_declaration":
			m, ok := g.extractFunction(node, sourceCode)
			if !ok {
				continue
			}
			recv := receiverType(node, sourceCode)
			if idx, ok := byName[recv]; ok {
				summary.Classes[idx].Methods = append(summary.Classes[idx].Methods, m)
				continue
			}
			if recv != "" {
				m.Name = recv + "." + m.Name
			}
			summary.Functions = append(summary.Functions, m)
		}
	}
}

func (g *GoExtractor) extractType(node *sitter.Node, sourceCode []byte) (ClassInfo, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ClassInfo{}, false
	}

	parentNode := node.Parent()
	if parentNode == nil || parentNode.Type() != "type_declaration" {
		parentNode = node
	}
	doc := g.extractDocComment(node, sourceCode)
	if doc == "" {
		doc = g.extractDocComment(parentNode, sourceCode)
	}

	info := ClassInfo{Name: nameNode.Content(sourceCode), Kind: "type", Methods: []FunctionInfo{}, Docstring: doc}
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		switch typeNode.Type() {
		case "struct_type":
			info.Kind = "struct"
		case "interface_type":
			info.Kind = "interface"
			info.Methods = g.extractInterfaceMethods(typeNode, sourceCode)
		}
	}
	return info, true
}

func (g *GoExtractor) extractInterfaceMethods(interfaceNode *sitter.Node, sourceCode []byte) []FunctionInfo {
	methods := []FunctionInfo{}
	for i := 0; i < int(interfaceNode.NamedChildCount()); i++ {
		n := interfaceNode.NamedChild(i)
		if n.Type() == "method_spec_list" {
			methods = append(methods, g.extractInterfaceMethods(n, sourceCode)...)
			continue
		}
		if n.Type() != "method_elem" && n.Type() != "method_spec" {
			continue
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		m := FunctionInfo{Name: nameNode.Content(sourceCode), Args: []Arg{}, Docstring: g.extractDocComment(n, sourceCode)}
		if paramsNode := n.ChildByFieldName("parameters"); paramsNode != nil {
			m.Args = g.extractParams(paramsNode, sourceCode)
		}
		if resultNode := n.ChildByFieldName("result"); resultNode != nil {
			m.Returns = resultNode.Content(sourceCode)
		}
		methods = append(methods, m)
	}
	return methods
}

func (g *GoExtractor) extractFunction(node *sitter.Node, sourceCode []byte) (FunctionInfo, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return FunctionInfo{}, false
	}
	info := FunctionInfo{
		Name:      nameNode.Content(sourceCode),
		Args:      []Arg{},
		Docstring: g.extractDocComment(node, sourceCode),
	}
	if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
		info.Args = g.extractParams(paramsNode, sourceCode)
	}
	if resultNode := node.ChildByFieldName("result"); resultNode != nil {
		info.Returns = resultNode.Content(sourceCode)
	}
	return info, true
}

// receiverType returns the bare type name of a method receiver.
func receiverType(method *sitter.Node, sourceCode []byte) string {
	recv := method.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	for i := 0; i < int(recv.NamedChildCount()); i++ {
		param := recv.NamedChild(i)
		if param.Type() != "parameter_declaration" {
			continue
		}
		typeNode := param.ChildByFieldName("type")
		if typeNode == nil {
			return ""
		}
		name := strings.TrimPrefix(typeNode.Content(sourceCode), "*")
		if idx := strings.Index(name, "["); idx >= 0 {
			name = name[:idx]
		}
		return name
	}
	return ""
}

func (g *GoExtractor) extractDocComment(node *sitter.Node, sourceCode []byte) string {
	var commentLines []string
	currentNode := node
	for {
		prevSibling := currentNode.PrevSibling()
		if prevSibling == nil || (currentNode.StartPoint().Row-prevSibling.EndPoint().Row > 1) {
			break
		}
		if prevSibling.Type() != "comment" {
			break
		}
		commentLines = append([]string{prevSibling.Content(sourceCode)}, commentLines...)
		currentNode = prevSibling
	}
	return cleanDocComment(strings.Join(commentLines, "\n"))
}

func (g *GoExtractor) extractParams(paramsNode *sitter.Node, sourceCode []byte) []Arg {
	params := []Arg{}
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		pNode := paramsNode.NamedChild(i)
		if pNode.Type() != "parameter_declaration" && pNode.Type() != "variadic_parameter_declaration" {
			continue
		}
		pType := ""
		if tn := pNode.ChildByFieldName("type"); tn != nil {
			pType = tn.Content(sourceCode)
			if pNode.Type() == "variadic_parameter_declaration" {
				pType = "..." + pType
			}
		}
		var names []string
		for j := 0; j < int(pNode.NamedChildCount()); j++ {
			if child := pNode.NamedChild(j); child.Type() == "identifier" {
				names = append(names, child.Content(sourceCode))
			}
		}
		if len(names) == 0 {
			params = append(params, Arg{Type: pType})
			continue
		}
		for _, n := range names {
			params = append(params, Arg{Name: n, Type: pType})
		}
	}
	return params
}

func cleanDocComment(rawComment string) string {
	if rawComment == "" {
		return ""
	}
	lines := strings.Split(rawComment, "\n")
	var cleaned []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "//")
		l = strings.TrimPrefix(l, "/*")
		l = strings.TrimSuffix(l, "*/")
		cleaned = append(cleaned, strings.TrimSpace(l))
	}
	return strings.Join(cleaned, "\n")
}
