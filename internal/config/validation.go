package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/optionbook/internal/retry"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	return v.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateCatalog(); err != nil {
		return err
	}
	if err := cv.validateModules(); err != nil {
		return err
	}
	if err := cv.validateTree(); err != nil {
		return err
	}
	if err := cv.validateBuild(); err != nil {
		return err
	}
	return cv.validateOutput()
}

func (cv *configurationValidator) validateCatalog() error {
	c := cv.config.Catalog
	for _, p := range append(append([]string(nil), c.Include...), c.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid catalog pattern: %q", p)
		}
	}
	if c.Repository != nil && strings.TrimSpace(c.Repository.URL) == "" {
		return errors.New("catalog.repository.url is required when a repository is configured")
	}
	if r := c.Repository; r != nil {
		if r.MaxRetries < 0 {
			return fmt.Errorf("catalog.repository.max_retries must be >= 0, got %d", r.MaxRetries)
		}
		if _, ok := retry.ParseBackoffMode(r.RetryBackoff); !ok {
			return fmt.Errorf("invalid catalog.repository.retry_backoff: %q", r.RetryBackoff)
		}
	}
	return nil
}

func (cv *configurationValidator) validateModules() error {
	seen := map[string]struct{}{}
	for i, m := range cv.config.Modules {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("modules[%d] is empty", i)
		}
		if _, dup := seen[m]; dup {
			return fmt.Errorf("duplicate module: %s", m)
		}
		seen[m] = struct{}{}
	}
	for name := range cv.config.PackageSet {
		if strings.TrimSpace(name) == "" {
			return errors.New("package_set contains an empty package name")
		}
	}
	return nil
}

func (cv *configurationValidator) validateTree() error {
	if n := cv.config.Tree.RootSegmentCount(); n < 0 {
		return fmt.Errorf("tree.root_segments must be >= 0, got %d", n)
	}
	return nil
}

func (cv *configurationValidator) validateBuild() error {
	if cv.config.Build.Jobs < 1 {
		return fmt.Errorf("build.jobs must be >= 1, got %d", cv.config.Build.Jobs)
	}
	if cv.config.Builder.IsEnabled() && strings.TrimSpace(cv.config.Builder.Command) == "" {
		return errors.New("builder.command is required when the builder is enabled")
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	dir := strings.TrimSpace(cv.config.Output.Directory)
	if dir == "" {
		return errors.New("output.directory is required")
	}
	if dir == "." || dir == "/" {
		return fmt.Errorf("output.directory %q would replace the working tree", dir)
	}
	return nil
}
