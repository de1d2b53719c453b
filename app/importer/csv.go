package importer

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
)

// Row is one data row of the uploaded CSV, keyed by the literal (trimmed)
// header text. Line is the 1-based line number in the file, Position the
// 1-based position among data rows; team IDs are derived from Position.
type Row struct {
	Line     int
	Position int
	Fields   map[string]string
}

// Get returns the trimmed cell value for a header, or "" when the column
// is absent.
func (r *Row) Get(header string) string {
	return r.Fields[header]
}

// IsEmpty reports whether every cell in the row is blank.
func (r *Row) IsEmpty() bool {
	for _, v := range r.Fields {
		if v != "" {
			return false
		}
	}
	return true
}

// Reader parses an uploaded CSV into header-keyed rows. It is a single
// forward pass over the data: rows are consumed once and the reader cannot
// be restarted.
type Reader struct {
	reader   *csv.Reader
	headers  []string
	line     int
	position int
}

// NewReader builds a Reader over raw upload bytes and consumes the header
// row. A UTF-8 BOM is stripped so the first header cell maps cleanly.
func NewReader(data []byte) (*Reader, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.TrimLeadingSpace = true
	// Human-authored spreadsheets export ragged rows; column counts are
	// reconciled against the header instead of rejected.
	cr.FieldsPerRecord = -1

	r := &Reader{reader: cr}

	record, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}
	r.line = 1

	r.headers = make([]string, len(record))
	for i, h := range record {
		r.headers[i] = strings.TrimSpace(h)
	}
	return r, nil
}

// Headers returns the trimmed header names in column order.
func (r *Reader) Headers() []string {
	return r.headers
}

// Read returns the next non-blank data row, io.EOF when the file is
// exhausted, or a ParseError for malformed content.
func (r *Reader) Read() (*Row, error) {
	for {
		record, err := r.reader.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		r.line++
		if err != nil {
			return nil, &ParseError{Line: r.line, Err: err}
		}

		row := &Row{
			Line:   r.line,
			Fields: make(map[string]string, len(r.headers)),
		}
		for i, header := range r.headers {
			if i < len(record) {
				row.Fields[header] = strings.TrimSpace(record[i])
			} else {
				row.Fields[header] = ""
			}
		}

		if row.IsEmpty() {
			continue
		}
		r.position++
		row.Position = r.position
		return row, nil
	}
}

// ReadAll drains the reader, skipping blank rows. The first malformed row
// fails the whole parse: silently dropping data is worse than asking the
// administrator to fix the export.
func (r *Reader) ReadAll() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
