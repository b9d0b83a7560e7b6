// Package config handles YAML config file loading for the wmiq CLI.
package config

import (
	"fmt"
	"sort"
)

// DefaultNamespace is the namespace used when neither the config file nor
// the CLI flags name one.
const DefaultNamespace = `Root\cimv2`

// Config represents a wmiq.yaml configuration file. All values are optional
// and act as defaults for wmiq flags. CLI flags always override config
// values.
type Config struct {
	// Namespace is the WMI namespace path to connect to.
	Namespace string `yaml:"namespace"`

	// Queries maps a short name to a WQL query, so recurring diagnostics
	// can be invoked as `wmiq query --name <name>`.
	Queries map[string]string `yaml:"queries"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{Namespace: DefaultNamespace}
}

// ResolveNamespace returns the namespace from the flag value, the config
// file, or the default, in that order of precedence.
func (c *Config) ResolveNamespace(flag string) string {
	if flag != "" {
		return flag
	}
	if c.Namespace != "" {
		return c.Namespace
	}
	return DefaultNamespace
}

// LookupQuery resolves a named query from the config file.
func (c *Config) LookupQuery(name string) (string, error) {
	wql, ok := c.Queries[name]
	if !ok {
		return "", fmt.Errorf("no query named %q in config (have: %v)", name, c.QueryNames())
	}
	return wql, nil
}

// QueryNames returns the configured query names in sorted order.
func (c *Config) QueryNames() []string {
	names := make([]string, 0, len(c.Queries))
	for name := range c.Queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
