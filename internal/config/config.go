package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the top-level configuration for vqm-netlist
type Config struct {
	// Output controls how exported tables are written
	Output OutputConfig `json:"output,omitempty"`

	// Strict contains warning-promotion options
	Strict StrictConfig `json:"strict,omitempty"`
}

// OutputConfig controls table export
type OutputConfig struct {
	// Format selects the encoding: "json" or "msgpack"
	Format string `json:"format,omitempty"`

	// Pretty indents JSON output (ignored for msgpack)
	Pretty *bool `json:"pretty,omitempty"`

	// Path is the output file; empty means stdout
	Path string `json:"path,omitempty"`

	// Validate runs the CUE contract check before writing
	Validate *bool `json:"validate,omitempty"`
}

// StrictConfig promotes selected warnings to errors
type StrictConfig struct {
	// DuplicateNets makes a duplicate net declaration fail the run
	DuplicateNets bool `json:"duplicateNets,omitempty"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:   "json",
			Pretty:   boolPtr(true),
			Validate: boolPtr(true),
		},
		Strict: StrictConfig{
			DuplicateNets: false,
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}

// Load finds and loads the configuration file
// Search order:
//  1. ./vqm_netlist.json (current working directory)
//  2. ./.vqm_netlist.json (current working directory)
//  3. <rootPath>/vqm_netlist.json (if different from cwd)
//  4. ~/.config/vqm_netlist/config.json
//
// Returns DefaultConfig if no config file is found
func Load(rootPath string) (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, "vqm_netlist.json"),
		filepath.Join(cwd, ".vqm_netlist.json"),
	}

	// If rootPath is a directory and different from cwd, also check there
	if info, err := os.Stat(rootPath); err == nil && info.IsDir() {
		absRoot, _ := filepath.Abs(rootPath)
		if absRoot != cwd {
			searchPaths = append(searchPaths,
				filepath.Join(rootPath, "vqm_netlist.json"),
				filepath.Join(rootPath, ".vqm_netlist.json"),
			)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "vqm_netlist", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	// No config found, return defaults
	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
	if c.Output.Pretty == nil {
		c.Output.Pretty = boolPtr(true)
	}
	if c.Output.Validate == nil {
		c.Output.Validate = boolPtr(true)
	}
}

// Validate rejects option values the tool cannot honor
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "json", "msgpack":
	default:
		return fmt.Errorf("unknown output format %q (want \"json\" or \"msgpack\")", c.Output.Format)
	}
	return nil
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
