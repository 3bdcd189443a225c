// Package cli implements the shelfd command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	flagBaseURL    string
	flagConfigFile string
	flagTokenFile  string
	flagTimeout    int
	flagMaxRetries int
	flagLogLevel   string
	flagLogFormat  string
	flagVerbose    bool
	jsonOutput     bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shelfd",
	Short: "shelfd is a REST resource client with a local state store",
	Long: `shelfd talks to a resource-oriented REST backend declared in a config file.
Each declared resource gets the full create/read/get/update/delete surface;
responses are normalized into a local id-keyed store that can be queried
with JSONPath or filter expressions.

Configuration can be provided via flags, SHELFD_* environment variables,
a local .shelfdrc.yaml, or ~/.config/shelfd/config.yaml.`,
	// No Run function here means 'shelfd' with no args prints help text.
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBaseURL, "base-url", "", "Backend base URL (default: http://localhost:3000)")
	pf.StringVarP(&flagConfigFile, "config", "c", "", "Resource config file (default: ./shelfd.yaml)")
	pf.StringVar(&flagTokenFile, "token-file", "", "File holding the bearer token")
	pf.IntVar(&flagTimeout, "timeout", 0, "Request timeout in seconds")
	pf.IntVar(&flagMaxRetries, "max-retries", -1, "Retry bound for idempotent requests")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
