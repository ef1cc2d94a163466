package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one recording entry from the report. Field values are kept as the
// raw strings from the file.
type Row struct {
	SessionOwner      string
	RecordingLink     string
	ContextIdentifier string
	RecordingCreated  string
	SessionName       string
	RecordingName     string
}

// columns are the header names the download loop depends on.
var columns = []string{
	"SessionOwner",
	"RecordingLink",
	"ContextIdentifier",
	"RecordingCreated",
	"SessionName",
	"RecordingName",
}

// Load reads the recording report at path and returns its rows in file
// order. The first record is treated as the header; a UTF-8 byte-order
// mark, if present, is skipped. A header missing any required column is an
// error.
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("report: open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads report rows from r. See Load.
func Parse(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	if err := skipBOM(br); err != nil {
		return nil, fmt.Errorf("report: read header: %w", err)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("report: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("report: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("report: missing column %q", c)
		}
	}

	field := func(record []string, name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("report: read row: %w", err)
		}
		rows = append(rows, Row{
			SessionOwner:      field(record, "SessionOwner"),
			RecordingLink:     field(record, "RecordingLink"),
			ContextIdentifier: field(record, "ContextIdentifier"),
			RecordingCreated:  field(record, "RecordingCreated"),
			SessionName:       field(record, "SessionName"),
			RecordingName:     field(record, "RecordingName"),
		})
	}

	return rows, nil
}

// skipBOM consumes a UTF-8 byte-order mark if the stream starts with one.
func skipBOM(br *bufio.Reader) error {
	bom := []byte{0xEF, 0xBB, 0xBF}
	peek, err := br.Peek(len(bom))
	if err != nil && err != io.EOF {
		return err
	}
	if len(peek) == len(bom) && peek[0] == bom[0] && peek[1] == bom[1] && peek[2] == bom[2] {
		if _, err := br.Discard(len(bom)); err != nil {
			return err
		}
	}
	return nil
}
