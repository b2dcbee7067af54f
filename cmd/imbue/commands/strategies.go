package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"imbuesvc/internal/imbue"
	api "imbuesvc/pkg/contracts/api/v1"
)

func newStrategiesCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "List the available gap-filling strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := strategiesResponse(opts)

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			case "table":
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tDESCRIPTION\tDEFAULT")
				for _, s := range resp.Strategies {
					def := ""
					if s.Name == resp.Default {
						def = "*"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.Description, def)
				}
				return w.Flush()
			default:
				return fmt.Errorf("unsupported format %q: want table or json", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table or json")
	return cmd
}

func strategiesResponse(opts *options) api.StrategiesResponse {
	resp := api.StrategiesResponse{Default: opts.cfg.Imbue.Strategy().String()}
	for _, s := range imbue.Strategies() {
		resp.Strategies = append(resp.Strategies, api.StrategyInfo{
			Name:        s.String(),
			Description: s.Description(),
		})
	}
	return resp
}
