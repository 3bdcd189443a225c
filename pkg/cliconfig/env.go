package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names understood by the CLI.
const (
	EnvBaseURL    = "SHELFD_BASE_URL"
	EnvConfigFile = "SHELFD_CONFIG"
	EnvTokenFile  = "SHELFD_TOKEN_FILE"
	EnvToken      = "SHELFD_TOKEN"
	EnvUserAgent  = "SHELFD_USER_AGENT"
	EnvTimeout    = "SHELFD_TIMEOUT"
	EnvMaxRetries = "SHELFD_MAX_RETRIES"
	EnvLogLevel   = "SHELFD_LOG_LEVEL"
	EnvLogFormat  = "SHELFD_LOG_FORMAT"
	EnvVerbose    = "SHELFD_VERBOSE"
	EnvJSON       = "SHELFD_JSON"
)

// LoadEnvConfig applies SHELFD_* environment variables to cfg. Unparsable
// numeric or boolean values are ignored rather than failing the whole load.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
		cfg.Sources["baseUrl"] = SourceEnv
	}
	if v := os.Getenv(EnvConfigFile); v != "" {
		cfg.ConfigFile = v
		cfg.Sources["configFile"] = SourceEnv
	}
	if v := os.Getenv(EnvTokenFile); v != "" {
		cfg.TokenFile = v
		cfg.Sources["tokenFile"] = SourceEnv
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
		cfg.Sources["userAgent"] = SourceEnv
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Timeout = n
			cfg.Sources["timeout"] = SourceEnv
		}
	}
	if v := os.Getenv(EnvMaxRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
			cfg.Sources["maxRetries"] = SourceEnv
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
			cfg.Sources["verbose"] = SourceEnv
		}
	}
	if v := os.Getenv(EnvJSON); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.JSON = b
			cfg.Sources["json"] = SourceEnv
		}
	}
}

// GetTokenFromEnv returns the bearer token from SHELFD_TOKEN, if set.
func GetTokenFromEnv() string {
	return os.Getenv(EnvToken)
}
