package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/newthinker/quanthub/internal/api"
	"github.com/newthinker/quanthub/internal/config"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the HTTP routes the server registers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Defaults()
		if cfgFile != "" {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = loaded
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "METHOD\tPATTERN\tNAME")
		for _, rt := range api.Routes() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", rt.Method, rt.Pattern, rt.Name)
		}
		if cfg.Metrics.Enabled {
			fmt.Fprintf(tw, "GET\t%s\tmetrics\n", cfg.Metrics.Path)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
