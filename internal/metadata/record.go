// Package metadata synthesizes Dublin Core metadata records from structured
// filenames and assembles them into upload batch tables for Omeka Classic.
package metadata

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bassettarchive/omeka-ingest/internal/identifier"
	"github.com/bassettarchive/omeka-ingest/internal/vocab"
)

// Column names of the Omeka upload table.
const (
	ColIdentifier         = "Dublin Core:Identifier"
	ColTitle              = "Dublin Core:Title"
	ColDescription        = "Dublin Core:Description"
	ColDate               = "Dublin Core:Date"
	ColCreator            = "Dublin Core:Creator"
	ColType               = "Dublin Core:Type"
	ColRights             = "Dublin Core:Rights"
	ColSource             = "Dublin Core:Source"
	ColPublisher          = "Dublin Core:Publisher"
	ColFormat             = "Dublin Core:Format"
	ColLanguage           = "Dublin Core:Language"
	ColOriginalFormat     = "Item Type Metadata:Original Format"
	ColPhysicalDimensions = "Item Type Metadata:Physical Dimensions"
	ColTags               = "tags"
	ColUploadURL          = "upload_url"
)

// Values applied to every synthesized record.
const (
	TypeStillImage = "StillImage"
	TypeText       = "Text"

	Rights    = "Available under a Creative Commons Attribution 4.0 International (CC BY 4.0) license"
	Source    = "Bassett Associates files"
	Publisher = "James H. Bassett"
)

// originalFormatText is the original-format label that marks a textual item.
const originalFormatText = "printed report"

// Record is one complete metadata row, keyed by the filename stem. Title,
// Description, and Date stay empty: they are curated by hand after upload.
type Record struct {
	// Filename is the staged file the record describes. It is not a table
	// column; the identifier (stem) keys the row.
	Filename string

	Identifier         string
	Title              string
	Description        string
	Date               string
	Creator            string
	Type               string
	Rights             string
	Source             string
	Publisher          string
	Format             string
	Language           string
	OriginalFormat     string
	PhysicalDimensions string
	Tags               string
	UploadURL          string
}

// Row returns the record as a table row.
func (r Record) Row() map[string]string {
	return map[string]string{
		ColIdentifier:         r.Identifier,
		ColTitle:              r.Title,
		ColDescription:        r.Description,
		ColDate:               r.Date,
		ColCreator:            r.Creator,
		ColType:               r.Type,
		ColRights:             r.Rights,
		ColSource:             r.Source,
		ColPublisher:          r.Publisher,
		ColFormat:             r.Format,
		ColLanguage:           r.Language,
		ColOriginalFormat:     r.OriginalFormat,
		ColPhysicalDimensions: r.PhysicalDimensions,
		ColTags:               r.Tags,
		ColUploadURL:          r.UploadURL,
	}
}

// DimensionProber reports pixel dimensions for a file, or an error when they
// are unavailable.
type DimensionProber interface {
	Probe(path string) (width, height int, err error)
}

// ProbeFunc adapts a plain function to the DimensionProber interface.
type ProbeFunc func(path string) (int, int, error)

func (f ProbeFunc) Probe(path string) (int, int, error) { return f(path) }

// Synthesizer derives complete metadata records from structured filenames.
type Synthesizer struct {
	Vocab   *vocab.Vocabulary
	Prober  DimensionProber
	BaseURL string // public URL prefix for staged files, with trailing slash
}

// Synthesize produces the metadata record for one staged file. An extension
// or format code missing from the vocabulary is a hard failure naming the
// file; an unreadable image only leaves the dimensions field empty.
func (s *Synthesizer) Synthesize(dir, filename string) (Record, error) {
	parts := identifier.Parse(filename)

	format, err := s.Vocab.MIMEType(parts.Extension)
	if err != nil {
		return Record{}, fmt.Errorf("synthesizing %s: %w", filename, err)
	}
	original, err := s.Vocab.OriginalFormat(parts.FormatCode)
	if err != nil {
		return Record{}, fmt.Errorf("synthesizing %s: %w", filename, err)
	}
	creator, err := s.Vocab.Creator(parts.FormatCode)
	if err != nil {
		return Record{}, fmt.Errorf("synthesizing %s: %w", filename, err)
	}

	itemType := TypeStillImage
	if original == originalFormatText {
		itemType = TypeText
	}

	dimensions := ""
	if w, h, err := s.Prober.Probe(filepath.Join(dir, filename)); err == nil {
		dimensions = fmt.Sprintf("%dx%d", w, h)
	}

	var tags []string
	for _, token := range parts.Categories {
		if label, ok := s.Vocab.Tag(token); ok {
			tags = append(tags, label)
		}
	}

	return Record{
		Filename:           filename,
		Identifier:         parts.Stem,
		Creator:            creator,
		Type:               itemType,
		Rights:             Rights,
		Source:             Source,
		Publisher:          Publisher,
		Format:             format,
		Language:           s.Vocab.Language(parts.FormatCode),
		OriginalFormat:     original,
		PhysicalDimensions: dimensions,
		Tags:               strings.Join(tags, ","),
		UploadURL:          s.BaseURL + filename,
	}, nil
}
