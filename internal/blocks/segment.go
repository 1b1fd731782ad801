package blocks

import "strings"

const boldMarker = "**"

// Segment splits a single line into styled runs. Text between a matched pair
// of bold markers becomes an emphasized run; everything else stays plain.
// An unmatched marker is kept as literal text. A line without any marker pair
// is returned as one plain run.
func Segment(line string) []Run {
	var runs []Run
	matched := false
	rest := line
	for {
		open := strings.Index(rest, boldMarker)
		if open < 0 {
			break
		}
		closing := strings.Index(rest[open+len(boldMarker):], boldMarker)
		if closing < 0 {
			break
		}
		closing += open + len(boldMarker)
		matched = true

		if open > 0 {
			runs = append(runs, Run{Text: rest[:open]})
		}
		if inner := rest[open+len(boldMarker) : closing]; inner != "" {
			runs = append(runs, Run{Text: inner, Bold: true})
		}
		rest = rest[closing+len(boldMarker):]
	}

	if rest != "" {
		runs = append(runs, Run{Text: rest})
	}
	if len(runs) == 0 {
		if matched {
			return []Run{{}}
		}
		return []Run{{Text: line}}
	}
	return runs
}
