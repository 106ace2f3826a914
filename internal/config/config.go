package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and database configuration.
type Paths struct {
	DataDir    string `toml:"data_dir"`
	OutputDir  string `toml:"output_dir"`
	LogDir     string `toml:"log_dir"`
	VerifiedDB string `toml:"verified_db"`
}

// Datasets names the enumeration files a run links. Either side can be
// overridden per-invocation on the command line.
type Datasets struct {
	EarlierCSV string `toml:"earlier_csv"`
	LaterCSV   string `toml:"later_csv"`
}

// Matching contains pair scoring and tier resolution thresholds.
type Matching struct {
	ScoreFloor        int    `toml:"score_floor"`
	Tier1Min          int    `toml:"tier1_min"`
	Tier2Min          int    `toml:"tier2_min"`
	RegressionYears   int    `toml:"regression_years"`
	DedupYearGap      int    `toml:"dedup_year_gap"`
	DefaultBirthPlace string `toml:"default_birth_place"`
	BlockingPolicy    string `toml:"blocking_policy"`
	BatchSize         int    `toml:"batch_size"`
}

// Boosting contains household-context boost settings.
type Boosting struct {
	Enabled          bool    `toml:"enabled"`
	Floor            int     `toml:"floor"`
	HeadBonus        int     `toml:"head_bonus"`
	HeadNameCutoff   float64 `toml:"head_name_cutoff"`
	SpouseBonus      int     `toml:"spouse_bonus"`
	ChildBonus       int     `toml:"child_bonus"`
	ParentBonus      int     `toml:"parent_bonus"`
	CoResidenceBonus int     `toml:"coresidence_bonus"`
}

// Relations contains kinship inference and propagation settings.
type Relations struct {
	MinMemberScore    int  `toml:"min_member_score"`
	SymmetricSiblings bool `toml:"symmetric_siblings"`
	SymmetricCousins  bool `toml:"symmetric_cousins"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for censuslink.
//
// Configuration sections by subsystem:
//   - Paths: data/output/log directories and the verified database
//   - Datasets: default earlier and later enumeration files
//   - Matching: score floor, tier thresholds, mode penalties, blocking
//   - Boosting: household-context bonuses and the boost floor
//   - Relations: member match threshold and reciprocity policies
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Datasets  Datasets  `toml:"datasets"`
	Matching  Matching  `toml:"matching"`
	Boosting  Boosting  `toml:"boosting"`
	Relations Relations `toml:"relations"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/censuslink/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("censuslink.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output and log directories a run writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dir := filepath.Dir(c.Paths.VerifiedDB); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
