// Package config holds the permission gates that the filesystem,
// network, and process builtins consult before touching the outside
// world, plus the yaml.v3-backed file form a Vexel deployment can set
// them from. The shape — a small struct loaded from YAML with flag
// overrides, held as a package-level singleton read by the builtins
// package — mirrors sambeau-basil's own config.go, whose SEC-000x
// catalog entries this builtin stack reuses for denied-permission
// errors.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the set of capabilities a running script is allowed to
// exercise. All gates default closed; a script run with none of
// --allow-read/--allow-write/--allow-execute/--allow-net set can only
// touch pure-computation builtins.
type Config struct {
	AllowRead    bool   `yaml:"allow_read"`
	AllowWrite   bool   `yaml:"allow_write"`
	AllowExecute bool   `yaml:"allow_execute"`
	AllowNet     bool   `yaml:"allow_net"`
	WebcoreAddr  string `yaml:"webcore_addr"`
}

// Default returns a fully locked-down Config.
func Default() *Config {
	return &Config{WebcoreAddr: ":4747"}
}

// Current is the process-wide active configuration, set once by
// cmd/vexel at startup before any script evaluation begins.
var Current = Default()

// Load reads a YAML config file at path, falling back silently to
// Default() if path is empty.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Set installs cfg as the process-wide Current configuration.
func Set(cfg *Config) {
	Current = cfg
}
