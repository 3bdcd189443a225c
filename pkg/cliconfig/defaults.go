package cliconfig

// DefaultBaseURL is the backend used when nothing else is configured,
// matching the usual local development server.
const DefaultBaseURL = "http://localhost:3000"

// DefaultTimeout is the default request timeout in seconds.
const DefaultTimeout = 30

// DefaultMaxRetries is the default retry bound for idempotent requests.
const DefaultMaxRetries = 2

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "info"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
		Sources:    make(map[string]string),
	}

	cfg.Sources["baseUrl"] = SourceDefault
	cfg.Sources["timeout"] = SourceDefault
	cfg.Sources["maxRetries"] = SourceDefault
	cfg.Sources["logLevel"] = SourceDefault
	cfg.Sources["logFormat"] = SourceDefault

	return cfg
}
