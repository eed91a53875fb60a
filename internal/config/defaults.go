package config

import "runtime"

const (
	defaultRootSegments   = 2
	defaultInclude        = "catalog/modules/**/*.hcl"
	defaultBuilderCommand = "mdbook"
	defaultOutputDir      = "./book"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

type catalogDefaults struct{}

func (catalogDefaults) Domain() string { return "catalog" }

func (catalogDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Catalog.Dir == "" {
		cfg.Catalog.Dir = "."
	}
	if len(cfg.Catalog.Include) == 0 {
		cfg.Catalog.Include = []string{defaultInclude}
	}
	if r := cfg.Catalog.Repository; r != nil && r.Depth < 0 {
		r.Depth = 0
	}
}

type builderDefaults struct{}

func (builderDefaults) Domain() string { return "builder" }

func (builderDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Builder.Command == "" {
		cfg.Builder.Command = defaultBuilderCommand
	}
	if len(cfg.Builder.Args) == 0 {
		cfg.Builder.Args = []string{"build"}
	}
}

type buildDefaults struct{}

func (buildDefaults) Domain() string { return "build" }

func (buildDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Build.Jobs <= 0 {
		cfg.Build.Jobs = runtime.NumCPU()
	}
}

type outputDefaults struct{}

func (outputDefaults) Domain() string { return "output" }

func (outputDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = defaultOutputDir
	}
}

var appliers = []DefaultApplier{catalogDefaults{}, builderDefaults{}, buildDefaults{}, outputDefaults{}}

func applyDefaults(cfg *Config) {
	for _, a := range appliers {
		a.ApplyDefaults(cfg)
	}
}
