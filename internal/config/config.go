package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/optionbook/internal/retry"
)

// Version is the only supported configuration format version.
const Version = "1.0"

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "optionbook.yaml"

// Config is the optionbook configuration file.
type Config struct {
	Version    string             `yaml:"version"`
	Catalog    CatalogConfig      `yaml:"catalog"`
	// Modules is an explicit module list (catalog-relative paths). Empty means discover.
	Modules    []string           `yaml:"modules,omitempty"`
	PackageSet map[string]Package `yaml:"package_set,omitempty"`
	Library    LibraryConfig      `yaml:"library"`
	Tree       TreeConfig         `yaml:"tree"`
	Render     RenderConfig       `yaml:"render"`
	Book       BookConfig         `yaml:"book"`
	Builder    BuilderConfig      `yaml:"builder"`
	Build      BuildConfig        `yaml:"build"`
	Output     OutputConfig       `yaml:"output"`
}

// CatalogConfig locates the module catalog.
type CatalogConfig struct {
	Dir        string            `yaml:"dir"`
	Include    []string          `yaml:"include"`
	Exclude    []string          `yaml:"exclude,omitempty"`
	Repository *RepositoryConfig `yaml:"repository,omitempty"`
}

// RepositoryConfig is a remote catalog cloned before discovery.
type RepositoryConfig struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch,omitempty"`
	Depth  int    `yaml:"depth,omitempty"`

	MaxRetries        int           `yaml:"max_retries,omitempty"`
	RetryBackoff      string        `yaml:"retry_backoff,omitempty"` // fixed|linear|exponential
	RetryInitialDelay time.Duration `yaml:"retry_initial_delay,omitempty"`
	RetryMaxDelay     time.Duration `yaml:"retry_max_delay,omitempty"`
}

// Package is one package-set entry exposed to modules as pkgs.<name>.
type Package struct {
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}

// LibraryConfig tunes the shared library exposed as lib.
type LibraryConfig struct {
	Version string `yaml:"version,omitempty"`
}

// TreeConfig controls address derivation.
type TreeConfig struct {
	RootSegments *int `yaml:"root_segments,omitempty"`
}

// RenderConfig toggles optional table content.
type RenderConfig struct {
	ShowExamples  bool `yaml:"show_examples"`
	HideInvisible bool `yaml:"hide_invisible"`
}

// BookConfig is written to book.toml.
type BookConfig struct {
	Title string `yaml:"title,omitempty"`
}

// BuilderConfig selects the external book builder.
type BuilderConfig struct {
	Enabled *bool    `yaml:"enabled,omitempty"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// BuildConfig tunes the pipeline.
type BuildConfig struct {
	// Jobs bounds the evaluation and render worker pools.
	Jobs int `yaml:"jobs"`
}

// OutputConfig is where the finished book lands.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// RootSegmentCount returns the configured number of dropped root segments.
func (t TreeConfig) RootSegmentCount() int {
	if t.RootSegments == nil {
		return defaultRootSegments
	}
	return *t.RootSegments
}

// RetryPolicy converts the retry fields; invalid values fall back to defaults.
func (r RepositoryConfig) RetryPolicy() retry.Policy {
	mode, _ := retry.ParseBackoffMode(r.RetryBackoff)
	return retry.NewPolicy(mode, r.RetryInitialDelay, r.RetryMaxDelay, r.MaxRetries)
}

// IsEnabled reports whether the external builder runs.
func (b BuilderConfig) IsEnabled() bool {
	return b.Enabled == nil || *b.Enabled
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: Version}
	applyDefaults(cfg)
	return cfg
}

// Load reads, defaults and validates a configuration file.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration YAML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = Version
	}
	if cfg.Version != Version {
		return nil, fmt.Errorf("unsupported configuration version: %s (expected %s)", cfg.Version, Version)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	enabled := true
	segments := defaultRootSegments
	example := Config{
		Version: Version,
		Catalog: CatalogConfig{
			Dir:     ".",
			Include: []string{defaultInclude},
		},
		PackageSet: map[string]Package{
			"foo": {Version: "1.0.0", Description: "The foo daemon"},
		},
		Library: LibraryConfig{Version: "1.0"},
		Tree:    TreeConfig{RootSegments: &segments},
		Book:    BookConfig{Title: "Module options"},
		Builder: BuilderConfig{Enabled: &enabled, Command: defaultBuilderCommand, Args: []string{"build"}},
		Output:  OutputConfig{Directory: defaultOutputDir},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
