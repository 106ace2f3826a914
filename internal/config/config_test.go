package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"censuslink/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "censuslink", "data")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.VerifiedDB != filepath.Join(tempHome, ".local", "share", "censuslink", "verified.db") {
		t.Fatalf("unexpected verified db path: %q", cfg.Paths.VerifiedDB)
	}
	if cfg.Matching.ScoreFloor != 60 || cfg.Matching.Tier1Min != 90 || cfg.Matching.Tier2Min != 80 {
		t.Fatalf("unexpected matching thresholds: %+v", cfg.Matching)
	}
	if cfg.Matching.DefaultBirthPlace != "VA" {
		t.Fatalf("unexpected default birthplace: %q", cfg.Matching.DefaultBirthPlace)
	}
	if cfg.Matching.BlockingPolicy != "strict" {
		t.Fatalf("unexpected blocking policy: %q", cfg.Matching.BlockingPolicy)
	}
	if !cfg.Boosting.Enabled {
		t.Fatal("expected boosting enabled by default")
	}
	if cfg.Boosting.Floor != 20 || cfg.Boosting.ChildBonus != 8 {
		t.Fatalf("unexpected boosting defaults: %+v", cfg.Boosting)
	}
	if !cfg.Relations.SymmetricSiblings || cfg.Relations.SymmetricCousins {
		t.Fatalf("unexpected relation symmetry defaults: %+v", cfg.Relations)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "censuslink.toml")

	type payload struct {
		Matching struct {
			ScoreFloor     int    `toml:"score_floor"`
			Tier1Min       int    `toml:"tier1_min"`
			Tier2Min       int    `toml:"tier2_min"`
			BlockingPolicy string `toml:"blocking_policy"`
		} `toml:"matching"`
		Relations struct {
			SymmetricCousins bool `toml:"symmetric_cousins"`
		} `toml:"relations"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Matching.ScoreFloor = 50
	custom.Matching.Tier1Min = 95
	custom.Matching.Tier2Min = 85
	custom.Matching.BlockingPolicy = "permissive"
	custom.Relations.SymmetricCousins = true
	custom.Logging.Format = "json"

	encoded, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, encoded, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("resolved = %q, want %q", resolved, configPath)
	}
	if cfg.Matching.ScoreFloor != 50 || cfg.Matching.Tier1Min != 95 || cfg.Matching.Tier2Min != 85 {
		t.Fatalf("custom thresholds not applied: %+v", cfg.Matching)
	}
	if cfg.Matching.BlockingPolicy != "permissive" {
		t.Fatalf("blocking policy = %q", cfg.Matching.BlockingPolicy)
	}
	if !cfg.Relations.SymmetricCousins {
		t.Fatal("symmetric cousins not applied")
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging format = %q", cfg.Logging.Format)
	}
	// Untouched sections keep their defaults.
	if cfg.Boosting.HeadBonus != 20 {
		t.Fatalf("head bonus = %d", cfg.Boosting.HeadBonus)
	}
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "censuslink.toml")
	bad := []byte("[matching]\ntier1_min = 70\ntier2_min = 80\n")
	if err := os.WriteFile(configPath, bad, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected inverted tier thresholds to fail validation")
	}
}

func TestValidateRejectsUnknownBlockingPolicy(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "censuslink.toml")
	bad := []byte("[matching]\nblocking_policy = \"fuzzy\"\n")
	if err := os.WriteFile(configPath, bad, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown blocking policy to fail validation")
	}
}

func TestCreateSampleWritesParseableConfig(t *testing.T) {
	tempDir := t.TempDir()
	samplePath := filepath.Join(tempDir, "nested", "config.toml")
	if err := config.CreateSample(samplePath); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := config.Load(samplePath); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	} else if !exists {
		t.Fatal("expected sample config to exist")
	}
}
