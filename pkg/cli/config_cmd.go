package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/getshelfd/shelfd/pkg/cli/internal/output"
)

// configEntry is one effective config value with its origin.
type configEntry struct {
	Key    string `json:"key"`
	Value  any    `json:"value"`
	Source string `json:"source"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective CLI configuration and where each value came from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveCLIConfig(cmd)
		if err != nil {
			return err
		}

		values := map[string]any{
			"baseUrl":    cfg.BaseURL,
			"configFile": cfg.ConfigFile,
			"tokenFile":  cfg.TokenFile,
			"userAgent":  cfg.UserAgent,
			"timeout":    cfg.Timeout,
			"maxRetries": cfg.MaxRetries,
			"logLevel":   cfg.LogLevel,
			"logFormat":  cfg.LogFormat,
			"verbose":    cfg.Verbose,
			"json":       cfg.JSON,
		}

		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		entries := make([]configEntry, 0, len(keys))
		for _, key := range keys {
			source := cfg.Sources[key]
			if source == "" {
				source = "unset"
			}
			entries = append(entries, configEntry{Key: key, Value: values[key], Source: source})
		}

		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), entries)
		}

		w := output.Table(cmd.OutOrStdout())
		fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%v\t%s\n", e.Key, e.Value, e.Source)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
