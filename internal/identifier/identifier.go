// Package identifier parses the structured filenames used across the
// archive, e.g. zoo_kcz_chimp_ph_00.tif: underscore-delimited tokens where
// the second-to-last stem token is the format code and the leading tokens
// are category tokens.
package identifier

import "strings"

// Parts are the fields extracted from one structured filename.
type Parts struct {
	// Stem is the filename with its extension removed; it keys the
	// metadata record.
	Stem string

	// Extension is the segment after the final dot, lowercased. Empty when
	// the filename has no dot.
	Extension string

	// FormatCode is the second-to-last underscore token of the stem (the
	// last token is a sequence number). Empty when the stem has fewer than
	// two tokens.
	FormatCode string

	// Categories holds up to the first two stem tokens, in order.
	Categories []string
}

// Parse splits a filename into its structured parts. It never fails: stems
// too short to carry a format code yield an empty code, which lookups reject
// downstream.
func Parse(filename string) Parts {
	stem := filename
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		stem = filename[:i]
		ext = strings.ToLower(filename[i+1:])
	}

	tokens := strings.Split(stem, "_")
	p := Parts{Stem: stem, Extension: ext}
	if len(tokens) >= 2 {
		p.FormatCode = tokens[len(tokens)-2]
	}
	for i := 0; i < len(tokens) && i < 2; i++ {
		p.Categories = append(p.Categories, tokens[i])
	}
	return p
}
