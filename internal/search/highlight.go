package search

import (
	"regexp"
	"strings"
)

// Segment is a run of text flagged as matching the active query or not.
// Concatenating the segments of a highlight in order reproduces the
// source text exactly.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text into an alternating sequence of plain and
// matching segments for the given query.
//
// Matching is case-insensitive and literal: regex metacharacters in the
// query are escaped, so user input can never inject pattern syntax. A
// blank query returns the whole text as one plain segment. Zero-length
// segments between adjacent matches and at either end are kept so that
// segment positions mirror the source string.
func Highlight(text, query string) []Segment {
	if strings.TrimSpace(query) == "" {
		return []Segment{{Text: text}}
	}

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	locs := re.FindAllStringIndex(text, -1)
	if locs == nil {
		return []Segment{{Text: text}}
	}

	segs := make([]Segment, 0, 2*len(locs)+1)
	prev := 0
	for _, loc := range locs {
		segs = append(segs, Segment{Text: text[prev:loc[0]]})
		segs = append(segs, Segment{Text: text[loc[0]:loc[1]], Match: true})
		prev = loc[1]
	}
	return append(segs, Segment{Text: text[prev:]})
}
