package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the revue configuration.
type Config struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`

	IgnorePaths   []string `yaml:"ignorePaths"`
	IgnoreAuthors []string `yaml:"ignoreAuthors"`
	Categories    []string `yaml:"categories"`

	MinSeverity     string `yaml:"minSeverity"`
	SkipEffortBelow int    `yaml:"skipEffortBelow"`
	MaxComments     int    `yaml:"maxComments"`
	ResolveRadius   int    `yaml:"resolveRadius"`

	MaxRelatedFiles    int `yaml:"maxRelatedFiles"`
	MaxSiblingsPerFile int `yaml:"maxSiblingsPerFile"`
	MaxDiffBytes       int `yaml:"maxDiffBytes"`

	Labels  LabelConfig   `yaml:"labels"`
	Privacy PrivacyConfig `yaml:"privacy"`
}

// LabelConfig controls label derivation on the reviewed PR.
type LabelConfig struct {
	Enabled      bool   `yaml:"enabled"`
	EffortPrefix string `yaml:"effortPrefix"`
	Security     string `yaml:"security"`
}

// PrivacyConfig controls secret redaction before any model call.
type PrivacyConfig struct {
	RedactSecrets bool     `yaml:"redactSecrets"`
	RedactPaths   []string `yaml:"redactPaths,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider: "anthropic",
		Model:    "claude-sonnet-4-20250514",
		IgnorePaths: []string{
			"vendor/**", "**/*.gen.go", "**/dist/**",
			"**/*.lock", "**/package-lock.json",
		},
		Categories: []string{
			"bug", "security", "performance", "correctness",
			"maintainability", "testing",
		},
		MinSeverity:        "suggestion",
		SkipEffortBelow:    0,
		MaxComments:        10,
		ResolveRadius:      3,
		MaxRelatedFiles:    5,
		MaxSiblingsPerFile: 2,
		MaxDiffBytes:       500000,
		Labels: LabelConfig{
			Enabled:      true,
			EffortPrefix: "review-effort/",
			Security:     "security",
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/*secrets*"},
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for revue.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "revue"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "revue"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "revue"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "revue"), nil
	default:
		return filepath.Join(home, ".config", "revue"), nil
	}
}

// localConfigFile is the repo-local config file name.
const localConfigFile = ".revue.yml"

// ConfigPath returns the path of the config file that would be loaded:
// the repo-local file if it exists, else the user-level file.
func ConfigPath() (string, error) {
	if _, err := os.Stat(localConfigFile); err == nil {
		return localConfigFile, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// fileBools re-decodes the boolean fields as pointers so an explicit
// false in the file is distinguishable from the field being absent.
type fileBools struct {
	Labels struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"labels"`
	Privacy struct {
		RedactSecrets *bool `yaml:"redactSecrets"`
	} `yaml:"privacy"`
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if no file exists.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	cfg, _, err := loadFileAt(path)
	return cfg, err
}

func loadFileAt(path string) (Config, fileBools, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fileBools{}, nil
		}
		return Config{}, fileBools{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fileBools{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	var bools fileBools
	if err := yaml.Unmarshal(data, &bools); err != nil {
		return Config{}, fileBools{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, bools, nil
}

// Save writes the config to the user-level config file.
func Save(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "config.yml"), data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only non-zero values
// should be set).
func Load(overrides map[string]string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	fileCfg, fileFlags, err := loadFileAt(path)
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg, fileFlags)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configuration values the pipeline cannot honor.
func Validate(cfg Config) error {
	switch cfg.MinSeverity {
	case "critical", "warning", "suggestion", "nitpick":
	default:
		return fmt.Errorf("invalid minSeverity %q (want critical, warning, suggestion, or nitpick)", cfg.MinSeverity)
	}
	if cfg.SkipEffortBelow < 0 || cfg.SkipEffortBelow > 5 {
		return fmt.Errorf("skipEffortBelow must be in [0,5], got %d", cfg.SkipEffortBelow)
	}
	if cfg.ResolveRadius < 0 {
		return fmt.Errorf("resolveRadius must be >= 0, got %d", cfg.ResolveRadius)
	}
	return nil
}

func mergeFile(dst *Config, src Config, bools fileBools) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if len(src.IgnorePaths) > 0 {
		dst.IgnorePaths = src.IgnorePaths
	}
	if len(src.IgnoreAuthors) > 0 {
		dst.IgnoreAuthors = src.IgnoreAuthors
	}
	if len(src.Categories) > 0 {
		dst.Categories = src.Categories
	}
	if src.MinSeverity != "" {
		dst.MinSeverity = src.MinSeverity
	}
	if src.SkipEffortBelow > 0 {
		dst.SkipEffortBelow = src.SkipEffortBelow
	}
	if src.MaxComments > 0 {
		dst.MaxComments = src.MaxComments
	}
	if src.ResolveRadius > 0 {
		dst.ResolveRadius = src.ResolveRadius
	}
	if src.MaxRelatedFiles > 0 {
		dst.MaxRelatedFiles = src.MaxRelatedFiles
	}
	if src.MaxSiblingsPerFile > 0 {
		dst.MaxSiblingsPerFile = src.MaxSiblingsPerFile
	}
	if src.MaxDiffBytes > 0 {
		dst.MaxDiffBytes = src.MaxDiffBytes
	}
	if src.Labels.EffortPrefix != "" {
		dst.Labels.EffortPrefix = src.Labels.EffortPrefix
	}
	if src.Labels.Security != "" {
		dst.Labels.Security = src.Labels.Security
	}
	if bools.Labels.Enabled != nil {
		dst.Labels.Enabled = *bools.Labels.Enabled
	}
	if bools.Privacy.RedactSecrets != nil {
		dst.Privacy.RedactSecrets = *bools.Privacy.RedactSecrets
	}
	if len(src.Privacy.RedactPaths) > 0 {
		dst.Privacy.RedactPaths = src.Privacy.RedactPaths
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("REVUE_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("REVUE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("REVUE_MIN_SEVERITY"); v != "" {
		cfg.MinSeverity = v
	}
	if v := os.Getenv("REVUE_IGNORE_AUTHORS"); v != "" {
		cfg.IgnoreAuthors = splitList(v)
	}
	if v := os.Getenv("REVUE_IGNORE_PATHS"); v != "" {
		cfg.IgnorePaths = splitList(v)
	}
	if v := os.Getenv("REVUE_SKIP_EFFORT_BELOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SkipEffortBelow = n
		}
	}
	if v := os.Getenv("REVUE_MAX_COMMENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxComments = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		// Flag overrides reuse the config-command key names; an unknown key
		// here is a programming error, not user input, so it is ignored.
		_ = SetField(cfg, key, v)
	}
}

// SetField sets a single config field by key name. Returns an error if key
// is unknown or the value does not parse.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "minSeverity":
		cfg.MinSeverity = value
	case "ignorePaths":
		cfg.IgnorePaths = splitList(value)
	case "ignoreAuthors":
		cfg.IgnoreAuthors = splitList(value)
	case "categories":
		cfg.Categories = splitList(value)
	case "skipEffortBelow":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("skipEffortBelow must be an integer: %w", err)
		}
		cfg.SkipEffortBelow = n
	case "maxComments":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxComments must be an integer: %w", err)
		}
		cfg.MaxComments = n
	case "resolveRadius":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("resolveRadius must be an integer: %w", err)
		}
		cfg.ResolveRadius = n
	case "maxRelatedFiles":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxRelatedFiles must be an integer: %w", err)
		}
		cfg.MaxRelatedFiles = n
	case "maxDiffBytes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxDiffBytes must be an integer: %w", err)
		}
		cfg.MaxDiffBytes = n
	case "labels.enabled":
		cfg.Labels.Enabled = value == "true"
	case "labels.effortPrefix":
		cfg.Labels.EffortPrefix = value
	case "labels.security":
		cfg.Labels.Security = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func splitList(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
