package knowledge

import "strings"

// cleanMarkdownOutput removes a markdown fence wrapped around the whole
// answer. Answers that merely start with a code block are left alone.
func cleanMarkdownOutput(text string) string {
	text = strings.TrimSpace(text)
	first, rest, ok := strings.Cut(text, "\n")
	if !ok || !strings.HasSuffix(rest, "```") {
		return text
	}
	switch strings.TrimSpace(first) {
	case "```", "```markdown", "```md":
		return strings.TrimSpace(strings.TrimSuffix(rest, "```"))
	}
	return text
}
