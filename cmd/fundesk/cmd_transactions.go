package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fundesk/internal/api"
	"fundesk/internal/i18n"
	"fundesk/internal/models"
	"fundesk/internal/query"
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List payout transactions",
}

var (
	transactionsQ       string
	transactionsState   string
	transactionsFund    int
	transactionsPage    int
	transactionsPerPage int
)

var transactionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		values := listValues(transactionsQ, transactionsState, transactionsPage, transactionsPerPage)
		if transactionsFund != 0 {
			values["fund_id"] = transactionsFund
		}
		return runList(values,
			func(ctx context.Context, v query.Values) (*api.Page[models.Transaction], error) {
				return client.Transactions().List(ctx, org, v)
			},
			[]string{"UID", "State", "Amount", "Fund", "Created"},
			func(t models.Transaction) []string {
				return []string{t.UID, t.StateLocale, t.AmountLocale, transactionFund(t), t.CreatedAtLocale}
			})
	},
}

var transactionsShowCmd = &cobra.Command{
	Use:   "show [transaction-uid]",
	Short: "Show one transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext()
		defer cancel()

		t, err := client.Transactions().Get(ctx, org, args[0])
		if err != nil {
			return err
		}
		printDetail([][2]string{
			{"UID", t.UID},
			{"State", t.StateLocale},
			{"Amount", t.AmountLocale},
			{"Fund", transactionFund(*t)},
			{"IBAN", t.IBANTo},
			{"Created", t.CreatedAtLocale},
		})
		return nil
	},
}

func transactionFund(t models.Transaction) string {
	if t.Fund == nil {
		return ""
	}
	return t.Fund.Name
}

var bulksCmd = &cobra.Command{
	Use:   "bulks",
	Short: "List and manage bulk payments",
}

var (
	bulksState   string
	bulksPage    int
	bulksPerPage int
)

var bulksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transaction bulks",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		values := listValues("", bulksState, bulksPage, bulksPerPage)
		return runList(values,
			func(ctx context.Context, v query.Values) (*api.Page[models.TransactionBulk], error) {
				return client.TransactionBulks().List(ctx, org, v)
			},
			[]string{"ID", "State", "Transactions", "Amount", "Created"},
			func(b models.TransactionBulk) []string {
				return []string{
					strconv.Itoa(b.ID), b.StateLocale,
					strconv.Itoa(b.VoucherTransactionsCount), b.CostLocale, b.CreatedAtLocale,
				}
			})
	},
}

var bulksShowCmd = &cobra.Command{
	Use:   "show [bulk-id]",
	Short: "Show one transaction bulk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		bulkID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid bulk id %q", args[0])
		}
		ctx, cancel := cmdContext()
		defer cancel()

		b, err := client.TransactionBulks().Get(ctx, org, bulkID)
		if err != nil {
			return err
		}
		bank := ""
		if b.Bank != nil {
			bank = b.Bank.Name
		}
		pairs := [][2]string{
			{"ID", strconv.Itoa(b.ID)},
			{"State", b.StateLocale},
			{"Bank", bank},
			{"Transactions", strconv.Itoa(b.VoucherTransactionsCount)},
			{"Amount", b.CostLocale},
			{"Created", b.CreatedAtLocale},
		}
		if b.AuthURL != "" {
			pairs = append(pairs, [2]string{"Authorize", b.AuthURL})
		}
		printDetail(pairs)
		return nil
	},
}

var bulksResetCmd = &cobra.Command{
	Use:   "reset [bulk-id]",
	Short: "Resubmit a rejected or failed bulk to the bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		bulkID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid bulk id %q", args[0])
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			fmt.Fprintln(stdout, i18n.T("bulk_reset_confirm"))
			b, err := client.TransactionBulks().Reset(ctx, org, bulkID)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "bulk %d: %s\n", b.ID, b.StateLocale)
			if b.AuthURL != "" {
				fmt.Fprintf(stdout, "authorize at %s\n", b.AuthURL)
			}
			return nil
		})
	},
}

var bulksAcceptCmd = &cobra.Command{
	Use:   "set-accepted [bulk-id]",
	Short: "Mark a manually settled bulk as accepted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		bulkID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid bulk id %q", args[0])
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			b, err := client.TransactionBulks().SetAccepted(ctx, org, bulkID)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "bulk %d: %s\n", b.ID, b.StateLocale)
			return nil
		})
	},
}

var bulksBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Batch the pending transactions into new bulks",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			b, err := client.TransactionBulks().Build(ctx, org)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "bulk %d created with %d transactions\n", b.ID, b.VoucherTransactionsCount)
			return nil
		})
	},
}

func init() {
	transactionsListCmd.Flags().StringVarP(&transactionsQ, "q", "q", "", "Search text")
	transactionsListCmd.Flags().StringVar(&transactionsState, "state", "", "Filter on state")
	transactionsListCmd.Flags().IntVar(&transactionsFund, "fund", 0, "Filter on fund id")
	transactionsListCmd.Flags().IntVar(&transactionsPage, "page", 1, "Page number")
	transactionsListCmd.Flags().IntVar(&transactionsPerPage, "per-page", 15, "Items per page")

	bulksListCmd.Flags().StringVar(&bulksState, "state", "", "Filter on state")
	bulksListCmd.Flags().IntVar(&bulksPage, "page", 1, "Page number")
	bulksListCmd.Flags().IntVar(&bulksPerPage, "per-page", 15, "Items per page")

	transactionsCmd.AddCommand(transactionsListCmd)
	transactionsCmd.AddCommand(transactionsShowCmd)
	bulksCmd.AddCommand(bulksListCmd)
	bulksCmd.AddCommand(bulksShowCmd)
	bulksCmd.AddCommand(bulksResetCmd)
	bulksCmd.AddCommand(bulksAcceptCmd)
	bulksCmd.AddCommand(bulksBuildCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(bulksCmd)
}
