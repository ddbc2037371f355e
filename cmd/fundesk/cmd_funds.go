package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fundesk/internal/api"
	"fundesk/internal/models"
	"fundesk/internal/query"
)

var fundsCmd = &cobra.Command{
	Use:   "funds",
	Short: "List and manage the organization's funds",
}

var (
	fundsQ        string
	fundsState    string
	fundsArchived bool
	fundsPage     int
	fundsPerPage  int
)

var fundsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List funds",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		values := listValues(fundsQ, fundsState, fundsPage, fundsPerPage)
		if fundsArchived {
			values["archived"] = true
		}
		return runList(values,
			func(ctx context.Context, v query.Values) (*api.Page[models.Fund], error) {
				return client.Funds().List(ctx, org, v)
			},
			[]string{"ID", "Name", "State", "Start", "End"},
			func(f models.Fund) []string {
				return []string{strconv.Itoa(f.ID), f.Name, f.StateLocale, f.StartDateLocale, f.EndDateLocale}
			})
	},
}

var fundsShowCmd = &cobra.Command{
	Use:   "show [fund-id]",
	Short: "Show one fund",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		fundID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid fund id %q", args[0])
		}
		ctx, cancel := cmdContext()
		defer cancel()

		fund, err := client.Funds().Get(ctx, org, fundID)
		if err != nil {
			return err
		}
		pairs := [][2]string{
			{"ID", strconv.Itoa(fund.ID)},
			{"Name", fund.Name},
			{"State", fund.StateLocale},
			{"Type", fund.Type},
			{"Start", fund.StartDateLocale},
			{"End", fund.EndDateLocale},
		}
		if fund.Budget != nil {
			pairs = append(pairs,
				[2]string{"Budget", fund.Budget.TotalLocale},
				[2]string{"Used", fund.Budget.UsedLocale})
		}
		printDetail(pairs)
		return nil
	},
}

var fundsArchiveCmd = &cobra.Command{
	Use:   "archive [fund-id]",
	Short: "Archive a fund",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		fundID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid fund id %q", args[0])
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			fund, err := client.Funds().Archive(ctx, org, fundID)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "fund %d archived (%s)\n", fund.ID, fund.StateLocale)
			return nil
		})
	},
}

func init() {
	fundsListCmd.Flags().StringVarP(&fundsQ, "q", "q", "", "Search text")
	fundsListCmd.Flags().StringVar(&fundsState, "state", "", "Filter on state")
	fundsListCmd.Flags().BoolVar(&fundsArchived, "archived", false, "Include only archived funds")
	fundsListCmd.Flags().IntVar(&fundsPage, "page", 1, "Page number")
	fundsListCmd.Flags().IntVar(&fundsPerPage, "per-page", 15, "Items per page")

	fundsCmd.AddCommand(fundsListCmd)
	fundsCmd.AddCommand(fundsShowCmd)
	fundsCmd.AddCommand(fundsArchiveCmd)
	rootCmd.AddCommand(fundsCmd)
}

// listValues builds the standard list query from the common flags. Empty
// text and state stay unset so they never reach the wire.
func listValues(q, state string, page, perPage int) query.Values {
	values := query.Values{
		"q":        nil,
		"state":    nil,
		"page":     page,
		"per_page": perPage,
	}
	if q != "" {
		values["q"] = q
	}
	if state != "" && state != "all" {
		values["state"] = state
	}
	return values
}
