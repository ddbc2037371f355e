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

var officesCmd = &cobra.Command{
	Use:   "offices",
	Short: "Manage the organization's office locations",
}

var officeReq api.OfficeRequest

var officesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List offices",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		return runList(query.Values{"page": 1, "per_page": 100},
			func(ctx context.Context, v query.Values) (*api.Page[models.Office], error) {
				return client.Offices().List(ctx, org, v)
			},
			[]string{"ID", "Address", "Phone", "Branch"},
			func(o models.Office) []string {
				return []string{strconv.Itoa(o.ID), o.Address, o.Phone, o.BranchName}
			})
	},
}

var officesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an office",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		if err := officeReq.Validate(); err != nil {
			return err
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			o, err := client.Offices().Create(ctx, org, &officeReq)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "office %d created\n", o.ID)
			return nil
		})
	},
}

var officesUpdateCmd = &cobra.Command{
	Use:   "update [office-id]",
	Short: "Update an office",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		officeID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid office id %q", args[0])
		}
		if err := officeReq.Validate(); err != nil {
			return err
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			o, err := client.Offices().Update(ctx, org, officeID, &officeReq)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "office %d updated\n", o.ID)
			return nil
		})
	},
}

var officesDeleteCmd = &cobra.Command{
	Use:   "delete [office-id]",
	Short: "Delete an office",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		officeID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid office id %q", args[0])
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			if err := client.Offices().Delete(ctx, org, officeID); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "office %d deleted\n", officeID)
			return nil
		})
	},
}

func officeRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&officeReq.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&officeReq.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&officeReq.BranchID, "branch-id", "", "Branch identifier")
	cmd.Flags().StringVar(&officeReq.BranchName, "branch-name", "", "Branch name")
	cmd.Flags().StringVar(&officeReq.BranchNumber, "branch-number", "", "Branch number")
}

func init() {
	officeRequestFlags(officesCreateCmd)
	officeRequestFlags(officesUpdateCmd)

	officesCmd.AddCommand(officesListCmd)
	officesCmd.AddCommand(officesCreateCmd)
	officesCmd.AddCommand(officesUpdateCmd)
	officesCmd.AddCommand(officesDeleteCmd)
	rootCmd.AddCommand(officesCmd)
}
