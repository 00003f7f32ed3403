package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "TEMPORAL_"

	sourceEmbedded = "embedded"
	fileName       = "temporal.yaml"
)

// Load reads settings, applies TEMPORAL_* environment overrides and
// validates the result.
// Search order: customPath -> ~/.temporal/config.yaml -> ./configs/temporal.yaml -> embedded default
//
// A custom path that cannot be read or parsed is an error; unreadable files
// further down the chain are skipped. Keys missing from a file keep their
// default values.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		path := ExpandPath(customPath)
		data, err := os.ReadFile(path)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		cfg, err := Parse(data, path)
		if err != nil {
			return DefaultConfig(), err
		}
		cfg.Source = path
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{UserConfigPath(), filepath.Join("configs", fileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data, path); err == nil {
			cfg.Source = path
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML, fileName)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Source = sourceEmbedded
	return cfg, nil
}

// Parse decodes settings on top of the defaults. The format is chosen by
// the extension of name: ".toml" selects TOML, anything else YAML.
func Parse(data []byte, name string) (Config, error) {
	cfg := DefaultConfig()

	if strings.EqualFold(filepath.Ext(name), ".toml") {
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", name, err)
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", name, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any TEMPORAL_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: failed to parse environment: %w", err)
	}
	return nil
}

// Marshal encodes cfg as YAML, or TOML when format is "toml".
func Marshal(cfg Config, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("config: failed to encode yaml: %w", err)
		}
		return data, nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: failed to encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("config: unknown format %q", format)
	}
}

// Dir returns the per-user data directory, or empty if home is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".temporal")
}

// UserConfigPath returns the path to the user config file, or empty if home is unavailable.
func UserConfigPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
