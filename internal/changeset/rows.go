package changeset

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

var errMissingHeader = errors.New("changeset is empty: missing header row")

// rowReader reads a changeset CSV as a sequence of header-keyed rows. Short
// rows are tolerated; absent columns simply do not appear in the row map.
type rowReader struct {
	reader *csv.Reader
	header []string
}

func newRowReader(input io.Reader) (*rowReader, error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errMissingHeader
	}
	if err != nil {
		return nil, err
	}
	for i, name := range header {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}
	return &rowReader{reader: reader, header: header}, nil
}

// next returns the next row keyed by header name, together with the line
// number it started on. It returns io.EOF when the input is exhausted.
func (r *rowReader) next() (map[string]string, int, error) {
	record, err := r.reader.Read()
	if err == io.EOF {
		return nil, 0, io.EOF
	}
	if err != nil {
		line := 0
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			line = parseErr.Line
		}
		return nil, line, err
	}

	line, _ := r.reader.FieldPos(0)
	row := make(map[string]string, len(r.header))
	for i, name := range r.header {
		if i < len(record) {
			row[name] = record[i]
		}
	}
	return row, line, nil
}
