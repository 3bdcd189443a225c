package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/getshelfd/shelfd/pkg/api"
	"github.com/getshelfd/shelfd/pkg/cliconfig"
	"github.com/getshelfd/shelfd/pkg/config"
	"github.com/getshelfd/shelfd/pkg/logging"
	"github.com/getshelfd/shelfd/pkg/store"
)

// DefaultConfigFileNames are searched in the current directory when no
// config file is given.
var DefaultConfigFileNames = []string{"shelfd.yaml", "shelfd.yml", "shelfd.json"}

// app bundles everything a command needs: the resolved configuration, the
// seeded store, and the API client built from the catalog.
type app struct {
	cfg     *cliconfig.CLIConfig
	fileCfg *config.Config
	store   *store.Store
	api     *api.API
	log     *slog.Logger
}

// resolveCLIConfig layers defaults, config files, environment, and flags.
func resolveCLIConfig(cmd *cobra.Command) (*cliconfig.CLIConfig, error) {
	cfg, err := cliconfig.LoadAll()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = flagBaseURL
		cfg.Sources["baseUrl"] = cliconfig.SourceFlag
	}
	if flags.Changed("config") {
		cfg.ConfigFile = flagConfigFile
		cfg.Sources["configFile"] = cliconfig.SourceFlag
	}
	if flags.Changed("token-file") {
		cfg.TokenFile = flagTokenFile
		cfg.Sources["tokenFile"] = cliconfig.SourceFlag
	}
	if flags.Changed("timeout") {
		cfg.Timeout = flagTimeout
		cfg.Sources["timeout"] = cliconfig.SourceFlag
	}
	if flags.Changed("max-retries") {
		cfg.MaxRetries = flagMaxRetries
		cfg.Sources["maxRetries"] = cliconfig.SourceFlag
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
		cfg.Sources["logLevel"] = cliconfig.SourceFlag
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = flagLogFormat
		cfg.Sources["logFormat"] = cliconfig.SourceFlag
	}
	if flags.Changed("verbose") {
		cfg.Verbose = flagVerbose
		cfg.Sources["verbose"] = cliconfig.SourceFlag
	}
	if flags.Changed("json") {
		cfg.JSON = jsonOutput
		cfg.Sources["json"] = cliconfig.SourceFlag
	}

	return cfg, nil
}

// findConfigFile resolves the resource config file path.
func findConfigFile(cfg *cliconfig.CLIConfig) (string, error) {
	if cfg.ConfigFile != "" {
		return cfg.ConfigFile, nil
	}
	for _, name := range DefaultConfigFileNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no resource config file found (looked for %v); pass one with --config", DefaultConfigFileNames)
}

// newLogger builds the stderr logger from the resolved config.
func newLogger(cfg *cliconfig.CLIConfig) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		level = logging.LevelDebug
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Config{Level: level, Format: format, Output: os.Stderr}), nil
}

// buildApp assembles the catalog, store, and API client for a command run.
func buildApp(cmd *cobra.Command) (*app, error) {
	cfg, err := resolveCLIConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	path, err := findConfigFile(cfg)
	if err != nil {
		return nil, err
	}
	fileCfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	// The resource config file supplies values the rc layers left at
	// their defaults.
	if cfg.Sources["baseUrl"] == cliconfig.SourceDefault && fileCfg.BaseURL != "" {
		cfg.BaseURL = fileCfg.BaseURL
		cfg.Sources["baseUrl"] = "config"
	}
	if cfg.TokenFile == "" && fileCfg.TokenFile != "" {
		cfg.TokenFile = fileCfg.TokenFile
		cfg.Sources["tokenFile"] = "config"
	}
	if cfg.UserAgent == "" && fileCfg.UserAgent != "" {
		cfg.UserAgent = fileCfg.UserAgent
	}

	catalog, err := fileCfg.Catalog()
	if err != nil {
		return nil, err
	}

	st := store.New(catalog, store.WithLogger(log))
	if err := st.Seed(catalog); err != nil {
		return nil, err
	}

	creds := cliconfig.ResolveTokenSource(cfg)

	opts := []api.Option{
		api.WithLogger(log),
		api.WithTimeout(time.Duration(cfg.Timeout) * time.Second),
		api.WithRetry(api.RetryPolicy{MaxRetries: cfg.MaxRetries, BaseDelay: 250 * time.Millisecond}),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, api.WithUserAgent(cfg.UserAgent))
	}

	a, err := api.New(cfg.BaseURL, catalog, st, creds, opts...)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, fileCfg: fileCfg, store: st, api: a, log: log}, nil
}
