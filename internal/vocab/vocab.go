// Package vocab holds the lookup tables that drive metadata synthesis:
// file extension to MIME type, format code to original-format label,
// creator and language, and category token to display tag.
package vocab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UnknownCodeError reports a lookup by an extension or format code that is
// not in the vocabulary. Synthesis treats this as a hard failure so that an
// incomplete row never reaches the upload table.
type UnknownCodeError struct {
	Kind string // "extension" or "format code"
	Code string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Code)
}

// Vocabulary is the full set of lookup tables. Keys are the short lowercase
// tokens that appear in structured filenames.
type Vocabulary struct {
	// MIMETypes maps file extensions to Dublin Core Format values.
	MIMETypes map[string]string `yaml:"mime_types"`

	// OriginalFormats maps format codes to original-format labels.
	OriginalFormats map[string]string `yaml:"original_formats"`

	// Creators maps format codes to creator names.
	Creators map[string]string `yaml:"creators"`

	// Languages maps format codes to language codes. Codes absent from the
	// table have no language.
	Languages map[string]string `yaml:"languages"`

	// Tags maps category tokens to display tags. Tokens absent from the
	// table are dropped from the tag list, not an error.
	Tags map[string]string `yaml:"tags"`
}

// Default returns the built-in vocabulary for the Bassett Associates
// archive.
func Default() *Vocabulary {
	return &Vocabulary{
		MIMETypes: map[string]string{
			"tif": "image/tiff",
			"jpg": "image/jpeg",
			"png": "image/png",
			"gif": "image/gif",
			"pdf": "application/pdf",
		},
		OriginalFormats: map[string]string{
			"ph": "photo",
			"sk": "sketch",
			"pl": "plan",
			"mo": "model",
			"di": "diagram",
			"po": "poster",
			"rp": "printed report",
		},
		Creators: map[string]string{
			"ph": "Bassett Associates",
			"sk": "James H. Bassett",
			"pl": "Bassett Associates",
			"mo": "Bassett Associates",
			"di": "Bassett Associates",
			"po": "Bassett Associates",
			"rp": "Bassett Associates",
		},
		Languages: map[string]string{
			"sk": "en",
			"pl": "en",
			"rp": "en",
		},
		Tags: map[string]string{
			"zoo": "zoo",
			"cmp": "campus",
			"cbd": "downtown",
			"mrf": "Muirfield",
			"pvt": "private estate",
			"kcz": "Kansas City",
			"ftw": "Fort Wayne",
			"col": "Columbus",
			"eri": "Erie",
			"bin": "Binder Park",
			"onu": "ONU",
			"blu": "Bluffton",
			"omr": "OSU-Marion",
			"oli": "OSU-Lima",
			"bgu": "BGSU",
			"fin": "Findlay",
			"lim": "Lima",
			"bel": "Bellfontaine",
			"tif": "Tiffin",
			"man": "Mansfield",
		},
	}
}

// Load reads a vocabulary override from a YAML file. Tables omitted from the
// file keep their built-in defaults, so an operator can extend the tag table
// without restating the rest.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file: %w", err)
	}

	var override Vocabulary
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parsing vocabulary file %s: %w", path, err)
	}

	v := Default()
	if override.MIMETypes != nil {
		v.MIMETypes = override.MIMETypes
	}
	if override.OriginalFormats != nil {
		v.OriginalFormats = override.OriginalFormats
	}
	if override.Creators != nil {
		v.Creators = override.Creators
	}
	if override.Languages != nil {
		v.Languages = override.Languages
	}
	if override.Tags != nil {
		v.Tags = override.Tags
	}
	return v, nil
}

// MIMEType resolves a file extension to its MIME type.
func (v *Vocabulary) MIMEType(ext string) (string, error) {
	m, ok := v.MIMETypes[ext]
	if !ok {
		return "", &UnknownCodeError{Kind: "extension", Code: ext}
	}
	return m, nil
}

// OriginalFormat resolves a format code to its original-format label.
func (v *Vocabulary) OriginalFormat(code string) (string, error) {
	f, ok := v.OriginalFormats[code]
	if !ok {
		return "", &UnknownCodeError{Kind: "format code", Code: code}
	}
	return f, nil
}

// Creator resolves a format code to a creator name.
func (v *Vocabulary) Creator(code string) (string, error) {
	c, ok := v.Creators[code]
	if !ok {
		return "", &UnknownCodeError{Kind: "format code", Code: code}
	}
	return c, nil
}

// Language returns the language code for a format code, or the empty string
// for codes with no language entry.
func (v *Vocabulary) Language(code string) string {
	return v.Languages[code]
}

// Tag resolves a category token to its display tag. A missing token is a
// soft miss.
func (v *Vocabulary) Tag(token string) (string, bool) {
	t, ok := v.Tags[token]
	return t, ok
}
