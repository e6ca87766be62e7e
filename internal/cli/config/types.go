// Package config provides configuration management for the sqlremap CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	Dialect      string `koanf:"dialect"`
	Rules        string `koanf:"rules"`
	Unqualified  bool   `koanf:"unqualified"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultDialect = "spark"
	DefaultOutput  = "table"
)
