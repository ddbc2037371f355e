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

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Review provider applications on the organization's funds",
}

var (
	providersQ       string
	providersState   string
	providersPage    int
	providersPerPage int

	providerAllowBudget   bool
	providerAllowProducts bool
)

func providerRow(p models.FundProvider) []string {
	org, fund := "", ""
	if p.Organization != nil {
		org = p.Organization.Name
	}
	if p.Fund != nil {
		fund = p.Fund.Name
	}
	return []string{strconv.Itoa(p.ID), org, fund, p.StateLocale}
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List provider applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		values := listValues(providersQ, providersState, providersPage, providersPerPage)
		return runList(values,
			func(ctx context.Context, v query.Values) (*api.Page[models.FundProvider], error) {
				return client.Providers().List(ctx, org, v)
			},
			[]string{"ID", "Provider", "Fund", "State"},
			providerRow)
	},
}

var providersApproveCmd = &cobra.Command{
	Use:   "approve [fund-id] [provider-id]",
	Short: "Approve a provider on a fund",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		fundID, providerID, err := twoIDs(args)
		if err != nil {
			return err
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			p, err := client.Providers().Approve(ctx, org, fundID, providerID, providerAllowBudget, providerAllowProducts)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "provider %d: %s\n", p.ID, p.StateLocale)
			return nil
		})
	},
}

var providersDeclineCmd = &cobra.Command{
	Use:   "decline [fund-id] [provider-id]",
	Short: "Decline a provider on a fund",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		fundID, providerID, err := twoIDs(args)
		if err != nil {
			return err
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			p, err := client.Providers().Decline(ctx, org, fundID, providerID)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "provider %d: %s\n", p.ID, p.StateLocale)
			return nil
		})
	},
}

// providerFundsCmd covers the provider side: funds to apply to and the
// organization's own applications.
var providerFundsCmd = &cobra.Command{
	Use:   "provider-funds",
	Short: "Browse funds and manage this organization's fund applications",
}

var providerFundsAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "List funds open for applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		values := listValues(providersQ, "", providersPage, providersPerPage)
		return runList(values,
			func(ctx context.Context, v query.Values) (*api.Page[models.Fund], error) {
				return client.ProviderFunds().ListAvailable(ctx, org, v)
			},
			[]string{"ID", "Name", "State", "End"},
			func(f models.Fund) []string {
				return []string{strconv.Itoa(f.ID), f.Name, f.StateLocale, f.EndDateLocale}
			})
	},
}

var providerFundsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List this organization's applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		values := listValues(providersQ, providersState, providersPage, providersPerPage)
		return runList(values,
			func(ctx context.Context, v query.Values) (*api.Page[models.FundProvider], error) {
				return client.ProviderFunds().List(ctx, org, v)
			},
			[]string{"ID", "Provider", "Fund", "State"},
			providerRow)
	},
}

var providerFundsApplyCmd = &cobra.Command{
	Use:   "apply [fund-id]",
	Short: "Apply to a fund",
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
			p, err := client.ProviderFunds().Apply(ctx, org, fundID)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "application %d: %s\n", p.ID, p.StateLocale)
			return nil
		})
	},
}

var providerFundsUnsubscribeNote string

var providerFundsUnsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe [fund-provider-id]",
	Short: "Withdraw from a fund",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		fundProviderID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid fund provider id %q", args[0])
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			if err := client.ProviderFunds().Unsubscribe(ctx, org, fundProviderID, providerFundsUnsubscribeNote); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "unsubscribed from fund provider %d\n", fundProviderID)
			return nil
		})
	},
}

func twoIDs(args []string) (int, int, error) {
	first, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid id %q", args[0])
	}
	second, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid id %q", args[1])
	}
	return first, second, nil
}

func init() {
	providersListCmd.Flags().StringVarP(&providersQ, "q", "q", "", "Search text")
	providersListCmd.Flags().StringVar(&providersState, "state", "", "Filter on state")
	providersListCmd.Flags().IntVar(&providersPage, "page", 1, "Page number")
	providersListCmd.Flags().IntVar(&providersPerPage, "per-page", 15, "Items per page")

	providersApproveCmd.Flags().BoolVar(&providerAllowBudget, "allow-budget", true, "Allow budget spending")
	providersApproveCmd.Flags().BoolVar(&providerAllowProducts, "allow-products", false, "Allow all products")

	providerFundsUnsubscribeCmd.Flags().StringVar(&providerFundsUnsubscribeNote, "note", "", "Reason for withdrawing")

	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersApproveCmd)
	providersCmd.AddCommand(providersDeclineCmd)
	providerFundsCmd.AddCommand(providerFundsAvailableCmd)
	providerFundsCmd.AddCommand(providerFundsListCmd)
	providerFundsCmd.AddCommand(providerFundsApplyCmd)
	providerFundsCmd.AddCommand(providerFundsUnsubscribeCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(providerFundsCmd)
}
