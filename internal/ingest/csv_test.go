package ingest

import (
	"strings"
	"testing"
)

func TestReadCensus_HeaderMapping(t *testing.T) {
	input := strings.Join([]string{
		"Line,First_Name,Last_Name,Gender,Birth_Year,Family",
		"1,John,Smith,M,1850,12",
		"2,Mary,Smith,F,1855,12",
	}, "\n")

	c, err := ReadCensus(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("records = %d, want 2", c.Len())
	}
	john := c.ByLine("1")
	if john == nil {
		t.Fatal("line 1 not indexed")
	}
	if john.FirstName != "JOHN" || john.LastName != "SMITH" || john.BirthYear != 1850 {
		t.Fatalf("record = %+v", john)
	}
	if john.Family != "12" {
		t.Fatalf("family = %q", john.Family)
	}
}

func TestReadCensus_ShortRowsPadded(t *testing.T) {
	input := "line,first_name,last_name\n1,John\n"
	c, err := ReadCensus(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	r := c.ByLine("1")
	if r == nil || r.FirstName != "JOHN" || r.LastName != "" {
		t.Fatalf("record = %+v", r)
	}
}

func TestReadCensus_MissingLineDropped(t *testing.T) {
	input := "line,first_name\n1,John\n,Ghost\n2,Mary\n"
	c, err := ReadCensus(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("records = %d, want 2", c.Len())
	}
	if c.Dropped != 1 {
		t.Fatalf("dropped = %d, want 1", c.Dropped)
	}
}

func TestReadCensus_DuplicateLineRejected(t *testing.T) {
	input := "line,first_name\n1,John\n1,Mary\n"
	if _, err := ReadCensus(strings.NewReader(input)); err == nil {
		t.Fatal("duplicate line identifier must fail")
	}
}

func TestReadCensus_Empty(t *testing.T) {
	c, err := ReadCensus(strings.NewReader(""))
	if err != nil {
		t.Fatalf("read empty: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("records = %d, want 0", c.Len())
	}
}
