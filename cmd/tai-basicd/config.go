package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModuleConfig describes one module to create at startup.
type ModuleConfig struct {
	// Location is the slot the module occupies, e.g. "0".
	Location string `yaml:"location"`

	// NetIf enables creation of the module's network interface.
	NetIf bool `yaml:"netif"`

	// HostIfs lists the host interface indices to create.
	HostIfs []uint32 `yaml:"hostifs"`
}

// FileConfig is the YAML configuration file layout.
type FileConfig struct {
	Modules []ModuleConfig `yaml:"modules"`
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, mc := range fc.Modules {
		if mc.Location == "" {
			return nil, fmt.Errorf("module %d: location is required", i)
		}
	}

	return &fc, nil
}
