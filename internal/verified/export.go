package verified

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// WriteCSV renders the table in the fixed Columns order. Relation lists
// are comma-joined inside their cell; the csv writer quotes them.
func WriteCSV(w io.Writer, people []*Person) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range people {
		if p == nil {
			continue
		}
		if err := cw.Write(p.Row()); err != nil {
			return fmt.Errorf("write person %s: %w", p.EgoID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a verified-table export. The header decides column
// positions, so reordered or partial exports still load; rows without an
// egoid are rejected.
func ReadCSV(r io.Reader) ([]*Person, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := index["egoid"]; !ok {
		return nil, fmt.Errorf("verified csv missing egoid column")
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var people []*Person
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++
		egoid := field(row, "egoid")
		if egoid == "" {
			return nil, fmt.Errorf("row %d: missing egoid", line)
		}
		p := &Person{
			EgoID:         egoid,
			Spouse:        field(row, "spouse"),
			Mother:        field(row, "mother"),
			Father:        field(row, "father"),
			Children:      SplitIDs(field(row, "children")),
			Siblings:      SplitIDs(field(row, "siblings")),
			Cousins:       SplitIDs(field(row, "cousins")),
			Niblings:      SplitIDs(field(row, "niblings")),
			Grandchildren: SplitIDs(field(row, "grandchildren")),
		}
		p.normalize()
		people = append(people, p)
	}
	return people, nil
}
