package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"censuslink/internal/config"
)

func TestMatchWritesAssignmentCSV(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	earlier := filepath.Join(dir, "earlier.csv")
	if err := os.WriteFile(earlier, []byte(strings.Join([]string{
		"line,first_name,last_name,gender,race,birth_year,family,head,relation",
		"1,John,Smith,M,W,1840,10,Y,Self",
		"2,Mary,Smith,F,W,1845,10,,Wife",
	}, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write earlier: %v", err)
	}
	later := filepath.Join(dir, "later.csv")
	if err := os.WriteFile(later, []byte(strings.Join([]string{
		"line,first_name,last_name,gender,race,birth_year,family,head,relation",
		"1,John,Smith,M,W,1840,20,Y,Self",
		"2,Mary,Smith,F,W,1844,20,,Wife",
	}, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write later: %v", err)
	}

	cfg := config.Default()
	cfg.Paths.DataDir = dir
	cfg.Paths.OutputDir = dir
	cfg.Paths.LogDir = dir
	cfg.Paths.VerifiedDB = filepath.Join(dir, "verified.db")
	cfg.Boosting.Enabled = false
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	assignOut := filepath.Join(dir, "changes.csv")
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	// Cutoff between the two tier-1 scores keeps only the head pair.
	root.SetArgs([]string{"-c", cfgPath, "match", earlier, later, "--assign-out", assignOut, "--cutoff", "180"})

	if err := root.Execute(); err != nil {
		t.Fatalf("match failed: %v", err)
	}
	data, err := os.ReadFile(assignOut)
	if err != nil {
		t.Fatalf("assignment file not written: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one assignment row:\n%s", data)
	}
	if lines[0] != "line,egoid" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "1,1" {
		t.Fatalf("assignment row = %q", lines[1])
	}
}
