// Package csvtable reads CSV files as master datasets of a datatable.Pipeline.
//
// The encoding, separator and line endings of a file are detected automatically:
//   - Character encodings (UTF-8, UTF-16LE, ISO 8859-1, Windows 1252, Macintosh)
//   - Field separators (comma, semicolon, tab) or a "sep=X" header line
//   - Line endings (\n, \r\n)
package csvtable

import (
	"errors"
	"fmt"
)

// Format is the detected or configured format of a CSV file.
//
// Example:
//
//	format := &Format{
//	    Encoding:  "UTF-8",
//	    Separator: ";",
//	    Newline:   "\n",
//	}
type Format struct {
	// Encoding is the name of the character encoding
	// as understood by github.com/domonda/go-types/charset.
	Encoding string `json:"encoding" yaml:"encoding"`

	// Separator is the single character field delimiter.
	Separator string `json:"separator" yaml:"separator"`

	// Newline is "\n" or "\r\n".
	Newline string `json:"newline" yaml:"newline"`
}

// NewFormat returns a UTF-8 Format with "\n" newlines
// and the passed separator.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\n",
	}
}

// Validate returns an error if the Format is nil or incomplete.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csvtable.Format")
	case f.Encoding == "":
		return errors.New("missing csvtable.Format.Encoding")
	case len(f.Separator) != 1:
		return fmt.Errorf("invalid csvtable.Format.Separator: %q", f.Separator)
	case f.Newline != "\n" && f.Newline != "\r\n":
		return fmt.Errorf("invalid csvtable.Format.Newline: %q", f.Newline)
	}
	return nil
}

// FormatDetectionConfig configures the detection of the format of a CSV file.
type FormatDetectionConfig struct {
	// Encodings to try in order of priority.
	Encodings []string `json:"encodings" yaml:"encodings"`

	// EncodingTests are strings with characters
	// that are encoded differently by the Encodings.
	// The first encoding that decodes the data so that
	// it contains one of the test strings is used.
	EncodingTests []string `json:"encodingTests" yaml:"encodingTests"`
}

// NewDefaultFormatDetectionConfig returns a FormatDetectionConfig
// for European and Cyrillic files.
func NewDefaultFormatDetectionConfig() *FormatDetectionConfig {
	return &FormatDetectionConfig{
		Encodings: []string{
			"UTF-8",
			"UTF-16LE",
			"ISO 8859-1",
			"Windows 1252", // like ANSI
			"Macintosh",
		},
		EncodingTests: []string{
			"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
			"д", "Д", "ъ", "Ъ", "б", "Б", "л", "Л", "и", "И", "ж",
		},
	}
}
