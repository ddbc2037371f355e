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

var vouchersCmd = &cobra.Command{
	Use:   "vouchers",
	Short: "List and manage sponsor vouchers",
}

var (
	vouchersQ       string
	vouchersState   string
	vouchersFund    int
	vouchersPage    int
	vouchersPerPage int

	voucherNote   string
	voucherNotify bool
	voucherEmail  string
)

var vouchersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vouchers",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		values := listValues(vouchersQ, vouchersState, vouchersPage, vouchersPerPage)
		if vouchersFund != 0 {
			values["fund_id"] = vouchersFund
		}
		return runList(values,
			func(ctx context.Context, v query.Values) (*api.Page[models.Voucher], error) {
				return client.Vouchers().List(ctx, org, v)
			},
			[]string{"ID", "Number", "State", "Amount", "Email"},
			func(v models.Voucher) []string {
				return []string{strconv.Itoa(v.ID), v.Number, v.StateLocale, v.AmountLocale, v.IdentityEmail}
			})
	},
}

var vouchersShowCmd = &cobra.Command{
	Use:   "show [voucher-id]",
	Short: "Show one voucher",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		voucherID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid voucher id %q", args[0])
		}
		ctx, cancel := cmdContext()
		defer cancel()

		voucher, err := client.Vouchers().Get(ctx, org, voucherID)
		if err != nil {
			return err
		}
		printDetail([][2]string{
			{"ID", strconv.Itoa(voucher.ID)},
			{"Number", voucher.Number},
			{"State", voucher.StateLocale},
			{"Amount", voucher.AmountLocale},
			{"Available", voucher.AmountAvailableLocale},
			{"Spent", voucher.AmountSpentLocale},
			{"Email", voucher.IdentityEmail},
			{"Expires", voucher.ExpireAtLocale},
			{"Note", voucher.Note},
		})
		return nil
	},
}

var vouchersDeactivateCmd = &cobra.Command{
	Use:   "deactivate [voucher-id]",
	Short: "Deactivate a voucher with an audit note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		voucherID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid voucher id %q", args[0])
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			voucher, err := client.Vouchers().Deactivate(ctx, org, voucherID, voucherNote, voucherNotify)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, i18n.TData("voucher_deactivated", map[string]any{"Number": voucher.Number}))
			return nil
		})
	},
}

var vouchersActivateCmd = &cobra.Command{
	Use:   "activate [voucher-id]",
	Short: "Re-activate a deactivated voucher",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		voucherID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid voucher id %q", args[0])
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			voucher, err := client.Vouchers().Activate(ctx, org, voucherID, voucherNote)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "voucher %s activated\n", voucher.Number)
			return nil
		})
	},
}

var vouchersSendCmd = &cobra.Command{
	Use:   "send [voucher-id]",
	Short: "Email a voucher to an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		voucherID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid voucher id %q", args[0])
		}
		if voucherEmail == "" {
			return fmt.Errorf("--email is required")
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			if err := client.Vouchers().Send(ctx, org, voucherID, voucherEmail); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "voucher %d sent to %s\n", voucherID, voucherEmail)
			return nil
		})
	},
}

func init() {
	vouchersListCmd.Flags().StringVarP(&vouchersQ, "q", "q", "", "Search text")
	vouchersListCmd.Flags().StringVar(&vouchersState, "state", "", "Filter on state")
	vouchersListCmd.Flags().IntVar(&vouchersFund, "fund", 0, "Filter on fund id")
	vouchersListCmd.Flags().IntVar(&vouchersPage, "page", 1, "Page number")
	vouchersListCmd.Flags().IntVar(&vouchersPerPage, "per-page", 15, "Items per page")

	vouchersDeactivateCmd.Flags().StringVar(&voucherNote, "note", "", "Audit note")
	vouchersDeactivateCmd.Flags().BoolVar(&voucherNotify, "notify", false, "Notify the voucher holder by email")
	vouchersActivateCmd.Flags().StringVar(&voucherNote, "note", "", "Audit note")
	vouchersSendCmd.Flags().StringVar(&voucherEmail, "email", "", "Destination address (required)")

	vouchersCmd.AddCommand(vouchersListCmd)
	vouchersCmd.AddCommand(vouchersShowCmd)
	vouchersCmd.AddCommand(vouchersDeactivateCmd)
	vouchersCmd.AddCommand(vouchersActivateCmd)
	vouchersCmd.AddCommand(vouchersSendCmd)
	rootCmd.AddCommand(vouchersCmd)
}
