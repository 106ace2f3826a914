package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEnumeration(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "census.csv")
	rows := []string{
		"line,first_name,last_name,gender,birth_year,family,relation",
		"1,Amos,Tyler,M,1820,A,",
		"2,John,Smith,M,1843,B,",
		"3,Mary,Smith,F,1845,B,WIFE",
		"4,Sarah,Smith,F,1868,B,DAUGHTER",
		"5,Silas,Boyd,M,1830,C,",
	}
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write enumeration: %v", err)
	}
	return path
}

func TestShowContextAroundLine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeEnumeration(t)

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"show", path, "3", "--context", "1"})

	if err := root.Execute(); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 context rows, got %d:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "   2 |") || !strings.HasPrefix(lines[2], "   4 |") {
		t.Fatalf("neighbours missing:\n%s", out.String())
	}
	if !strings.HasPrefix(lines[1], ">> 3 |") {
		t.Fatalf("center row not marked:\n%s", out.String())
	}
	if !strings.Contains(lines[1], "MARY SMITH") {
		t.Fatalf("center row content wrong: %q", lines[1])
	}
}

func TestShowContextUnknownLine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeEnumeration(t)

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"show", path, "99"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for unknown line")
	}
}

func TestShowSummaryWithoutLine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeEnumeration(t)

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"show", path})

	if err := root.Execute(); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out.String(), "Records") {
		t.Fatalf("summary missing record count:\n%s", out.String())
	}
}
