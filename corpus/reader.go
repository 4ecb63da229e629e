package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadRows reads a two-column CSV corpus (phonemes, graphemes).
// The first row is a header and is skipped. Quotes are parsed leniently, so a
// bare quote stays part of its field. Rows with a missing column, and rows the
// CSV parser still rejects, are returned with empty sides so validation counts
// them as invalid. Only I/O failures are returned as errors.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.LazyQuotes = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty corpus")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []Row
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			rows = append(rows, Row{Line: pe.StartLine})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		row := Row{Line: line}
		if len(fields) > 0 {
			row.Phonemes = strings.TrimSpace(fields[0])
		}
		if len(fields) > 1 {
			row.Graphemes = strings.TrimSpace(fields[1])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile is a convenience wrapper that opens a file path.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
