package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fundesk/internal/query"
)

// overviewCmd fetches the first page of every resource concurrently and
// prints the server totals, mirroring the dashboard landing page.
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show resource totals for the organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext()
		defer cancel()

		probe := query.Values{"page": 1, "per_page": 1}
		var funds, vouchers, reservations, transactions, bulks int

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			page, err := client.Funds().List(gctx, org, probe)
			if err == nil {
				funds = page.Meta.Total
			}
			return err
		})
		g.Go(func() error {
			page, err := client.Vouchers().List(gctx, org, probe)
			if err == nil {
				vouchers = page.Meta.Total
			}
			return err
		})
		g.Go(func() error {
			page, err := client.Reservations().List(gctx, org, probe)
			if err == nil {
				reservations = page.Meta.Total
			}
			return err
		})
		g.Go(func() error {
			page, err := client.Transactions().List(gctx, org, probe)
			if err == nil {
				transactions = page.Meta.Total
			}
			return err
		})
		g.Go(func() error {
			page, err := client.TransactionBulks().List(gctx, org, probe)
			if err == nil {
				bulks = page.Meta.Total
			}
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		printDetail([][2]string{
			{"Funds", fmt.Sprintf("%d", funds)},
			{"Vouchers", fmt.Sprintf("%d", vouchers)},
			{"Reservations", fmt.Sprintf("%d", reservations)},
			{"Transactions", fmt.Sprintf("%d", transactions)},
			{"Bulk payments", fmt.Sprintf("%d", bulks)},
		})
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(dashboardCmd)
}
