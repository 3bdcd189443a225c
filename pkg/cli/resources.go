package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getshelfd/shelfd/pkg/api"
	"github.com/getshelfd/shelfd/pkg/cli/internal/output"
)

var (
	flagData   string
	flagQuery  string
	flagFilter string
	flagParams []string
)

var getCmd = &cobra.Command{
	Use:   "get RESOURCE ID",
	Short: "Fetch a single entity by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		client, err := a.api.Resource(args[0])
		if err != nil {
			return err
		}
		value, err := client.Get(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		return output.JSON(cmd.OutOrStdout(), value)
	},
}

var listCmd = &cobra.Command{
	Use:   "list RESOURCE",
	Short: "Fetch a resource collection",
	Long: `Fetch a resource collection into the local store and print it.

The committed entities can be narrowed with --query (a JSONPath evaluated
against the entity list) or --filter (a boolean expression evaluated per
entity, e.g. 'pages > 300 && author == "Herbert"').`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		name := args[0]
		client, err := a.api.Resource(name)
		if err != nil {
			return err
		}

		opts, err := paramOptions(flagParams)
		if err != nil {
			return err
		}
		if _, err := client.Read(cmd.Context(), opts...); err != nil {
			return err
		}

		var result any
		switch {
		case flagQuery != "":
			result, err = a.store.Query(name, flagQuery)
		case flagFilter != "":
			result, err = a.store.Filter(name, flagFilter)
		default:
			result = a.store.List(name)
		}
		if err != nil {
			return err
		}
		return output.JSON(cmd.OutOrStdout(), result)
	},
}

var createCmd = &cobra.Command{
	Use:   "create RESOURCE --data JSON",
	Short: "Create an entity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseData(flagData)
		if err != nil {
			return err
		}
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		client, err := a.api.Resource(args[0])
		if err != nil {
			return err
		}
		value, err := client.Create(cmd.Context(), data)
		if err != nil {
			return err
		}
		return output.JSON(cmd.OutOrStdout(), value)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update RESOURCE ID --data JSON",
	Short: "Update an entity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseData(flagData)
		if err != nil {
			return err
		}
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		client, err := a.api.Resource(args[0])
		if err != nil {
			return err
		}
		data[client.IDField()] = args[1]
		value, err := client.Update(cmd.Context(), data)
		if err != nil {
			return err
		}
		return output.JSON(cmd.OutOrStdout(), value)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete RESOURCE ID",
	Short: "Delete an entity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		client, err := a.api.Resource(args[0])
		if err != nil {
			return err
		}
		if _, err := client.Delete(cmd.Context(), args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", args[0], args[1])
		return nil
	},
}

// parseData decodes a --data JSON object.
func parseData(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("--data is required (a JSON object)")
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("--data is not a JSON object: %w", err)
	}
	return data, nil
}

// paramOptions turns repeated --param k=v flags into query options, sorted
// for deterministic URLs.
func paramOptions(params []string) ([]api.CallOption, error) {
	sorted := make([]string, len(params))
	copy(sorted, params)
	sort.Strings(sorted)

	opts := make([]api.CallOption, 0, len(sorted))
	for _, p := range sorted {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", p)
		}
		opts = append(opts, api.WithQuery(key, value))
	}
	return opts, nil
}

func init() {
	listCmd.Flags().StringVar(&flagQuery, "query", "", "JSONPath over the fetched entities")
	listCmd.Flags().StringVar(&flagFilter, "filter", "", "Boolean expression over each entity")
	listCmd.Flags().StringArrayVar(&flagParams, "param", nil, "Query parameter key=value (repeatable)")
	createCmd.Flags().StringVarP(&flagData, "data", "d", "", "Entity payload as a JSON object")
	updateCmd.Flags().StringVarP(&flagData, "data", "d", "", "Entity payload as a JSON object")

	rootCmd.AddCommand(getCmd, listCmd, createCmd, updateCmd, deleteCmd)
}
