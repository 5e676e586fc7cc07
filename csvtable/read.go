package csvtable

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/domonda/go-types/charset"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-datatable"
)

// ErrNoHeader is returned for CSV data without a header row.
var ErrNoHeader = errors.New("csv has no header row")

// ReadDataset reads a CSV file with a header row
// and converts it to a master dataset of the passed columns
// using datatable.NewDatasetFromStrings.
// If columns is empty then every header column becomes a String column.
func ReadDataset(ctx context.Context, file fs.FileReader, columns datatable.Columns, config *FormatDetectionConfig) (rows []datatable.Row, cols datatable.Columns, format *Format, err error) {
	data, err := file.ReadAllContext(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	strs, format, err := ParseDetectFormat(data, config)
	if err != nil {
		return nil, nil, format, fmt.Errorf("%s: %w", file.Name(), err)
	}
	rows, cols, err = DatasetFromStrings(strs, columns)
	if err != nil {
		return nil, nil, format, fmt.Errorf("%s: %w", file.Name(), err)
	}
	return rows, cols, format, nil
}

// DatasetFromStrings uses the first non empty row as header
// and converts the following rows to a master dataset.
func DatasetFromStrings(strs [][]string, columns datatable.Columns) ([]datatable.Row, datatable.Columns, error) {
	strs = datatable.RemoveEmptyStringRows(strs)
	if len(strs) == 0 {
		return nil, nil, ErrNoHeader
	}
	return datatable.NewDatasetFromStrings(columns, strs[0], strs[1:])
}

// ParseDetectFormat detects the encoding, line endings
// and separator of the CSV data and parses it into rows of fields.
// A nil config uses NewDefaultFormatDetectionConfig.
func ParseDetectFormat(data []byte, config *FormatDetectionConfig) (rows [][]string, format *Format, err error) {
	if config == nil {
		config = NewDefaultFormatDetectionConfig()
	}
	format = new(Format)

	var encodings []charset.Encoding
	for _, name := range config.Encodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
		encodings = append(encodings, enc)
	}
	data, format.Encoding, err = charset.AutoDecode(data, encodings, config.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}
	data = sanitizeUTF8(charset.TrimBOM(data, charset.BOMUTF8))

	if bytes.Contains(data, []byte{'\r', '\n'}) {
		format.Newline = "\r\n"
	} else {
		format.Newline = "\n"
	}

	firstLine, rest, _ := bytes.Cut(data, []byte(format.Newline))
	if sep := parseSepHeaderLine(firstLine); sep != "" {
		format.Separator = sep
		data = rest
	} else {
		format.Separator = detectSeparator(data)
	}

	rows, err = parse(data, format.Separator[0])
	return rows, format, err
}

// ParseWithFormat parses CSV data of a known format.
func ParseWithFormat(data []byte, format *Format) (rows [][]string, err error) {
	if err = format.Validate(); err != nil {
		return nil, err
	}
	if format.Encoding == "UTF-8" {
		data = charset.TrimBOM(data, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		data, err = enc.Decode(data)
		if err != nil {
			return nil, err
		}
	}
	firstLine, rest, _ := bytes.Cut(data, []byte(format.Newline))
	if sep := parseSepHeaderLine(firstLine); sep != "" {
		if sep != format.Separator {
			return nil, fmt.Errorf("separator '%s' in header line is different from format.Separator '%s'", sep, format.Separator)
		}
		data = rest
	}
	return parse(data, format.Separator[0])
}

func parse(data []byte, separator byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = rune(separator)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// sanitizeUTF8 replaces replacement characters
// and no-break spaces with spaces.
func sanitizeUTF8(data []byte) []byte {
	return bytes.Map(
		func(r rune) rune {
			switch r {
			case '\uFFFD', '\u00a0':
				return ' '
			}
			return r
		},
		data,
	)
}

// detectSeparator returns the most frequent of
// comma, semicolon and tab, or comma for a tie.
func detectSeparator(data []byte) string {
	var (
		commas     = bytes.Count(data, []byte{','})
		semicolons = bytes.Count(data, []byte{';'})
		tabs       = bytes.Count(data, []byte{'\t'})
	)
	switch {
	case semicolons > commas && semicolons > tabs:
		return ";"
	case tabs > commas && tabs > semicolons:
		return "\t"
	}
	return ","
}

// parseSepHeaderLine returns X for a "sep=X" or "SEP=X" line,
// optionally quoted, else an empty string.
func parseSepHeaderLine(line []byte) string {
	line = bytes.TrimRight(line, "\r")
	if len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"' {
		line = line[1 : len(line)-1]
	}
	if len(line) != 5 {
		return ""
	}
	if !bytes.HasPrefix(line, []byte("sep=")) && !bytes.HasPrefix(line, []byte("SEP=")) {
		return ""
	}
	return string(line[4:5])
}
