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

var reservationsCmd = &cobra.Command{
	Use:   "reservations",
	Short: "List and settle product reservations",
}

var (
	reservationsQ        string
	reservationsState    string
	reservationsArchived bool
	reservationsPage     int
	reservationsPerPage  int
)

var reservationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reservations",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		values := listValues(reservationsQ, reservationsState, reservationsPage, reservationsPerPage)
		if reservationsArchived {
			values["archived"] = true
		}
		return runList(values,
			func(ctx context.Context, v query.Values) (*api.Page[models.Reservation], error) {
				return client.Reservations().List(ctx, org, v)
			},
			[]string{"ID", "Code", "State", "Amount", "Customer"},
			func(r models.Reservation) []string {
				return []string{strconv.Itoa(r.ID), r.Code, r.StateLocale, r.AmountLocale, r.FirstName + " " + r.LastName}
			})
	},
}

var reservationsShowCmd = &cobra.Command{
	Use:   "show [reservation-id]",
	Short: "Show one reservation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		reservationID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid reservation id %q", args[0])
		}
		ctx, cancel := cmdContext()
		defer cancel()

		r, err := client.Reservations().Get(ctx, org, reservationID)
		if err != nil {
			return err
		}
		product := ""
		if r.Product != nil {
			product = r.Product.Name
		}
		printDetail([][2]string{
			{"ID", strconv.Itoa(r.ID)},
			{"Code", r.Code},
			{"State", r.StateLocale},
			{"Amount", r.AmountLocale},
			{"Customer", r.FirstName + " " + r.LastName},
			{"Product", product},
			{"Created", r.CreatedAtLocale},
			{"Expires", r.ExpireAtLocale},
		})
		return nil
	},
}

// reservationAction builds the accept/reject/archive/unarchive commands,
// which differ only in the endpoint and the confirmation line.
func reservationAction(use, short, doneMsgID string,
	call func(ctx context.Context, org, id int) (*models.Reservation, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [reservation-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := requireOrg()
			if err != nil {
				return err
			}
			reservationID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid reservation id %q", args[0])
			}
			return guarded(func() error {
				ctx, cancel := cmdContext()
				defer cancel()
				r, err := call(ctx, org, reservationID)
				if err != nil {
					return err
				}
				if doneMsgID != "" {
					fmt.Fprintln(stdout, i18n.TData(doneMsgID, map[string]any{"Code": r.Code}))
				} else {
					fmt.Fprintf(stdout, "reservation %s: %s\n", r.Code, r.StateLocale)
				}
				return nil
			})
		},
	}
}

func init() {
	reservationsListCmd.Flags().StringVarP(&reservationsQ, "q", "q", "", "Search text")
	reservationsListCmd.Flags().StringVar(&reservationsState, "state", "", "Filter on state")
	reservationsListCmd.Flags().BoolVar(&reservationsArchived, "archived", false, "Include only archived reservations")
	reservationsListCmd.Flags().IntVar(&reservationsPage, "page", 1, "Page number")
	reservationsListCmd.Flags().IntVar(&reservationsPerPage, "per-page", 15, "Items per page")

	reservationsCmd.AddCommand(reservationsListCmd)
	reservationsCmd.AddCommand(reservationsShowCmd)
	reservationsCmd.AddCommand(reservationAction("accept", "Accept a pending reservation", "reservation_accepted",
		func(ctx context.Context, org, id int) (*models.Reservation, error) {
			return client.Reservations().Accept(ctx, org, id)
		}))
	reservationsCmd.AddCommand(reservationAction("reject", "Reject a pending reservation", "reservation_rejected",
		func(ctx context.Context, org, id int) (*models.Reservation, error) {
			return client.Reservations().Reject(ctx, org, id)
		}))
	reservationsCmd.AddCommand(reservationAction("archive", "Archive a settled reservation", "",
		func(ctx context.Context, org, id int) (*models.Reservation, error) {
			return client.Reservations().Archive(ctx, org, id)
		}))
	reservationsCmd.AddCommand(reservationAction("unarchive", "Restore an archived reservation", "",
		func(ctx context.Context, org, id int) (*models.Reservation, error) {
			return client.Reservations().Unarchive(ctx, org, id)
		}))
	rootCmd.AddCommand(reservationsCmd)
}
