// Package ingest loads census enumeration files into record collections.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"censuslink/internal/census"
)

// ReadCensus parses one enumeration CSV. The header row names the
// columns; header names are lowercased so exports from different
// transcription tools load without remapping. Rows with fewer cells than
// the header are padded with empties rather than rejected.
func ReadCensus(r io.Reader) (*census.Collection, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return census.NewCollection(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}

	var records []*census.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		fields := make(map[string]string, len(columns))
		for i, name := range columns {
			if name == "" {
				continue
			}
			if i < len(row) {
				fields[name] = strings.TrimSpace(row[i])
			} else {
				fields[name] = ""
			}
		}
		records = append(records, census.FromFields(fields))
	}
	return census.NewCollection(records)
}

// ReadCensusFile opens and parses an enumeration CSV from disk.
func ReadCensusFile(path string) (*census.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open census file: %w", err)
	}
	defer f.Close()

	c, err := ReadCensus(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}
