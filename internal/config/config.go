package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from astgen.yml.
type ProjectConfig struct {
	Addr           string `yaml:"addr,omitempty"`
	Verbose        bool   `yaml:"verbose,omitempty"`
	MaxSourceBytes int64  `yaml:"maxSourceBytes,omitempty"`
}

// Load attempts to read astgen.yml or astgen.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"astgen.yml", "astgen.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
