package blocks

import (
	"strings"
)

const codeFence = "```"

// Translate converts a markdown document into an ordered list of blocks.
// Only a fixed subset is recognized: headings up to level 3, "- " bullets,
// "1. " numbered items, fenced code and paragraphs. Anything else becomes a
// paragraph, so every input translates.
func Translate(doc string) []Block {
	var out []Block
	lines := strings.Split(doc, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		switch {
		case line == "":
			continue
		case line == "#":
			// A bare marker would become an empty heading.
			continue
		case strings.HasPrefix(line, "# "):
			out = append(out, Heading{Level: 1, Text: line[2:]})
		case strings.HasPrefix(line, "## "):
			out = append(out, Heading{Level: 2, Text: line[3:]})
		case strings.HasPrefix(line, "### "):
			out = append(out, Heading{Level: 3, Text: line[4:]})
		case strings.HasPrefix(line, "- "):
			out = append(out, BulletItem{Runs: Segment(line[2:])})
		case strings.HasPrefix(line, "1. "):
			out = append(out, NumberItem{Runs: Segment(line[3:])})
		case strings.HasPrefix(line, codeFence):
			language := NormalizeLanguage(line[len(codeFence):])
			var body []string
			for i+1 < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i+1]), codeFence) {
				i++
				body = append(body, lines[i])
			}
			// Step over the closing fence, if there is one.
			i++
			if len(body) > 0 {
				out = append(out, CodeBlock{Language: language, Text: strings.Join(body, "\n")})
			}
		default:
			out = append(out, Paragraph{Runs: Segment(line)})
		}
	}

	return out
}
