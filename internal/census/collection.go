package census

import "fmt"

// Collection holds one census side in source order with line and ego-id
// indexes.
type Collection struct {
	Records []*Record

	byLine map[string]*Record
	byEgo  map[string]*Record

	// Dropped counts input rows excluded for a missing line identifier.
	Dropped int
}

// NewCollection indexes records, silently dropping (but counting) rows
// without a line identifier. A duplicate line identifier within one side is
// structurally invalid input and a hard error.
func NewCollection(records []*Record) (*Collection, error) {
	c := &Collection{
		Records: make([]*Record, 0, len(records)),
		byLine:  make(map[string]*Record, len(records)),
		byEgo:   make(map[string]*Record),
	}
	for _, r := range records {
		if r.Line == "" {
			c.Dropped++
			continue
		}
		if _, exists := c.byLine[r.Line]; exists {
			return nil, fmt.Errorf("duplicate line identifier %q", r.Line)
		}
		c.byLine[r.Line] = r
		if r.EgoID != "" {
			c.byEgo[r.EgoID] = r
		}
		c.Records = append(c.Records, r)
	}
	return c, nil
}

// ByLine returns the record with the given line identifier, or nil.
func (c *Collection) ByLine(line string) *Record {
	return c.byLine[line]
}

// ByEgoID returns the record carrying the given persistent identity, or nil.
func (c *Collection) ByEgoID(egoid string) *Record {
	return c.byEgo[egoid]
}

// Context returns up to n records on either side of the given line in
// source order, the line's own record included. The window is clamped at
// the collection bounds; an unknown line yields nil.
func (c *Collection) Context(line string, n int) []*Record {
	if n < 0 || c.byLine[line] == nil {
		return nil
	}
	for i, r := range c.Records {
		if r.Line != line {
			continue
		}
		start := max(i-n, 0)
		end := min(i+n+1, len(c.Records))
		return c.Records[start:end]
	}
	return nil
}

// Len returns the number of indexed records.
func (c *Collection) Len() int {
	return len(c.Records)
}
