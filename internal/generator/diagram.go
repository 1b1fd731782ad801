package generator

import (
	"fmt"
	"sort"
	"strings"
)

// DependencyDiagram renders the import relations between modules as a
// mermaid flowchart section. It returns "" when no module imports another.
func (a *Analysis) DependencyDiagram() string {
	modules := a.Modules()
	known := make(map[string]bool, len(modules))
	for _, m := range modules {
		known[m.Name] = true
	}

	type edgeKey struct {
		from string
		to   string
	}
	edges := map[edgeKey]int{}
	for _, m := range modules {
		for _, p := range m.Files {
			for _, imp := range a.Files[p].Imports {
				for _, target := range importTargets(imp.Module, imp.Names) {
					if target == m.Name || !known[target] {
						continue
					}
					edges[edgeKey{from: m.Name, to: target}]++
				}
			}
		}
	}
	if len(edges) == 0 {
		return ""
	}

	keys := make([]edgeKey, 0, len(edges))
	for k := range edges {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from == keys[j].from {
			return keys[i].to < keys[j].to
		}
		return keys[i].from < keys[j].from
	})

	var sb strings.Builder
	sb.WriteString("## Module Dependencies\n\n")
	sb.WriteString("```mermaid\ngraph TD\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "    %s --> %s\n", mermaidID(k.from), mermaidID(k.to))
	}
	sb.WriteString("```\n")
	return sb.String()
}

// importTargets lists the path segments an import refers to. Python
// imports are dotted, Go imports are slash separated; both are split so a
// segment can be matched against module names.
func importTargets(module string, names []string) []string {
	candidates := names
	if module != "" {
		candidates = []string{module}
	}
	seen := map[string]bool{}
	var out []string
	for _, c := range candidates {
		c = strings.TrimLeft(c, ".")
		for _, seg := range strings.FieldsFunc(c, func(r rune) bool { return r == '.' || r == '/' }) {
			if !seen[seg] {
				seen[seg] = true
				out = append(out, seg)
			}
		}
	}
	return out
}

func mermaidID(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
