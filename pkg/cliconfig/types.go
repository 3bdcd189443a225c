// Package cliconfig provides configuration types and loading for the shelfd CLI.
package cliconfig

// CLIConfig represents the complete configuration for the shelfd CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables (SHELFD_*)
// 3. Local config file (.shelfdrc.yaml in current directory)
// 4. Global config file (~/.config/shelfd/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Backend settings
	BaseURL    string `yaml:"baseUrl" json:"baseUrl"`
	ConfigFile string `yaml:"configFile,omitempty" json:"configFile,omitempty"`
	TokenFile  string `yaml:"tokenFile,omitempty" json:"tokenFile,omitempty"`
	UserAgent  string `yaml:"userAgent,omitempty" json:"userAgent,omitempty"`

	// Request settings
	Timeout    int `yaml:"timeout" json:"timeout"` // seconds
	MaxRetries int `yaml:"maxRetries" json:"maxRetries"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// Output settings
	Verbose bool `yaml:"verbose" json:"verbose"`
	JSON    bool `yaml:"json" json:"json"`

	// Sources tracks where each value came from (for the config command)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields tracks which keys were explicitly present in a loaded file,
	// so an explicit false survives merging.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)
