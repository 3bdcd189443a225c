package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.BaseURL != "" {
		target.BaseURL = source.BaseURL
		target.Sources["baseUrl"] = sourceType
	}
	if source.ConfigFile != "" {
		target.ConfigFile = source.ConfigFile
		target.Sources["configFile"] = sourceType
	}
	if source.TokenFile != "" {
		target.TokenFile = source.TokenFile
		target.Sources["tokenFile"] = sourceType
	}
	if source.UserAgent != "" {
		target.UserAgent = source.UserAgent
		target.Sources["userAgent"] = sourceType
	}
	if source.Timeout != 0 {
		target.Timeout = source.Timeout
		target.Sources["timeout"] = sourceType
	}
	if intIsSet(source, "maxRetries", source.MaxRetries) {
		target.MaxRetries = source.MaxRetries
		target.Sources["maxRetries"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if boolIsSet(source, "verbose", source.Verbose) {
		target.Verbose = source.Verbose
		target.Sources["verbose"] = sourceType
	}
	if boolIsSet(source, "json", source.JSON) {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
}

// boolIsSet reports whether a boolean field was explicitly set in the
// source. SetFields (populated during file loading) detects an explicit
// false; without it only true values merge.
func boolIsSet(cfg *CLIConfig, yamlKey string, value bool) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	return value
}

// intIsSet is the integer analog: maxRetries 0 is a legal explicit value
// (retries disabled), so presence matters.
func intIsSet(cfg *CLIConfig, yamlKey string, value int) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	return value != 0
}
