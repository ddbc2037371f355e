package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fundesk/cmd/fundesk/ui"
	"fundesk/internal/refine"
)

var (
	featuresQ     string
	featuresState string
)

// featuresCmd lists the feature catalog. The catalog is small and fetched
// whole, so filtering happens client-side; the tab line keeps showing how
// many features each state choice would match.
var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Browse the organization's feature catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext()
		defer cancel()

		features, err := client.Organizations().Features(ctx, org)
		if err != nil {
			return err
		}

		var labels []string
		for _, opt := range refine.ActiveCounts(features) {
			labels = append(labels, opt.Label)
		}
		fmt.Fprintln(stdout, strings.Join(labels, "  "))

		crit := refine.Criteria{
			Q:      featuresQ,
			Facets: map[string]string{"state": featuresState},
		}
		matched := refine.Refine(features, crit, refine.FeatureText, refine.FeatureFacets)
		if len(matched) == 0 {
			fmt.Fprintln(stdout, "no features match")
			return nil
		}

		table := ui.NewTable([]string{"Key", "Name", "State", "Labels"})
		rows := make([][]string, len(matched))
		for i, f := range matched {
			state := "available"
			if f.Enabled {
				state = "active"
			}
			rows[i] = []string{f.Key, f.Name, state, strings.Join(f.Labels, ", ")}
		}
		table.SetRows(rows)
		fmt.Fprint(stdout, table.View(ui.DefaultStyles()))
		return nil
	},
}

func init() {
	featuresCmd.Flags().StringVarP(&featuresQ, "q", "q", "", "Search text")
	featuresCmd.Flags().StringVar(&featuresState, "state", "all", "active, available or all")
	rootCmd.AddCommand(featuresCmd)
}
