package generator

import (
	"encoding/json"

	"docflow/internal/extractor"
)

// DefaultTokenBudget bounds the estimated size of one prompt's analysis.
const DefaultTokenBudget = 4000

// estimateTokens approximates the token count of v's JSON form as one and
// a half tokens per whitespace-separated word. Separators are counted as
// if written with a space after each ',' and ':', the usual human-readable
// JSON layout, so structure contributes words and not only string content.
func estimateTokens(v any) int {
	data, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return countJSONWords(data) * 3 / 2
}

// countJSONWords counts the words of compact JSON as if it had been
// written with ", " and ": " separators.
func countJSONWords(data []byte) int {
	words := 0
	inWord := false
	inString := false
	escaped := false
	for _, c := range data {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		} else if c == '"' {
			inString = true
		}

		space := c == ' ' || c == '\t' || c == '\n' || c == '\r'
		if !space && !inWord {
			words++
		}
		inWord = !space
		if !inString && (c == ',' || c == ':') {
			inWord = false
		}
	}
	return words
}

// chunkAnalysis splits the analysis into groups whose estimated size stays
// within budget. A file that alone exceeds the budget is reduced to names
// and docstrings first. Files keep their sorted path order.
func chunkAnalysis(a *Analysis, budget int) []map[string]*extractor.FileSummary {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}

	var chunks []map[string]*extractor.FileSummary
	current := make(map[string]*extractor.FileSummary)
	tokens := 0

	for _, p := range a.Paths() {
		summary := a.Files[p]
		size := estimateTokens(summary)
		if size > budget {
			summary = summary.Essentials()
			size = estimateTokens(summary)
		}
		if tokens+size > budget && len(current) > 0 {
			chunks = append(chunks, current)
			current = make(map[string]*extractor.FileSummary)
			tokens = 0
		}
		current[p] = summary
		tokens += size
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

// fitToBudget returns files unchanged when they fit the budget and their
// reduced form otherwise.
func fitToBudget(files map[string]*extractor.FileSummary, budget int) map[string]*extractor.FileSummary {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}
	if estimateTokens(files) <= budget {
		return files
	}
	out := make(map[string]*extractor.FileSummary, len(files))
	for p, s := range files {
		out[p] = s.Essentials()
	}
	return out
}
