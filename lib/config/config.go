// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the portal client configuration.
//
// Configuration comes from a single YAML file located by:
//   - the PORTAL_CONFIG environment variable, or
//   - ~/.config/portal/config.yaml (XDG_CONFIG_HOME respected).
//
// A missing file is not an error: every field has a default, and
// command-line flags override whatever the file says.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the portal API prefix used when neither the
// config file nor the --server flag specify one.
const DefaultBaseURL = "http://localhost:8080/portal/api"

// Config is the portal client configuration.
type Config struct {
	// BaseURL is the portal API prefix, including the /portal/api
	// base path.
	BaseURL string `yaml:"base_url"`

	// Output is the default output format for scriptable commands:
	// "table" or "json".
	Output string `yaml:"output"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Output:  "table",
	}
}

// Path returns the config file location: $PORTAL_CONFIG if set,
// otherwise $XDG_CONFIG_HOME/portal/config.yaml or
// ~/.config/portal/config.yaml.
func Path() string {
	if envPath := os.Getenv("PORTAL_CONFIG"); envPath != "" {
		return envPath
	}
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("/tmp", "portal-config.yaml")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "portal", "config.yaml")
}

// Load reads the config file at path, filling unset fields with
// defaults. A missing file yields the defaults with no error.
func Load(path string) (Config, error) {
	loaded := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return loaded, nil
	}
	if err != nil {
		return loaded, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return loaded, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if loaded.BaseURL == "" {
		loaded.BaseURL = DefaultBaseURL
	}
	if loaded.Output == "" {
		loaded.Output = "table"
	}
	if loaded.Output != "table" && loaded.Output != "json" {
		return loaded, fmt.Errorf("config %s: output must be \"table\" or \"json\", got %q", path, loaded.Output)
	}
	return loaded, nil
}
