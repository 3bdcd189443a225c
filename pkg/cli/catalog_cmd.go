package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getshelfd/shelfd/pkg/cli/internal/output"
	"github.com/getshelfd/shelfd/pkg/config"
)

// catalogEntry is the JSON shape of one catalog row.
type catalogEntry struct {
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	IDField    string   `json:"idField"`
	Operations []string `json:"operations"`
	HasSchema  bool     `json:"hasSchema"`
	SeedCount  int      `json:"seedCount,omitempty"`
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the declared resources and their operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveCLIConfig(cmd)
		if err != nil {
			return err
		}
		path, err := findConfigFile(cfg)
		if err != nil {
			return err
		}
		fileCfg, err := config.LoadFromFile(path)
		if err != nil {
			return err
		}
		catalog, err := fileCfg.Catalog()
		if err != nil {
			return err
		}

		entries := make([]catalogEntry, 0, catalog.Len())
		for _, r := range catalog.Resources() {
			ops := make([]string, len(r.Operations))
			for i, op := range r.Operations {
				ops[i] = string(op)
			}
			entries = append(entries, catalogEntry{
				Name:       r.Name,
				Path:       r.Path,
				IDField:    r.IDField,
				Operations: ops,
				HasSchema:  r.Schema != nil,
				SeedCount:  len(r.Seed),
			})
		}

		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), entries)
		}

		w := output.Table(cmd.OutOrStdout())
		fmt.Fprintln(w, "NAME\tPATH\tID FIELD\tOPERATIONS\tSCHEMA")
		for _, e := range entries {
			schema := "-"
			if e.HasSchema {
				schema = "yes"
			}
			fmt.Fprintf(w, "%s\t/%s\t%s\t%s\t%s\n",
				e.Name, e.Path, e.IDField, strings.Join(e.Operations, ","), schema)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
