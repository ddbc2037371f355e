package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fundesk/internal/api"
	"fundesk/internal/models"
	"fundesk/internal/query"
)

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "List the organizations this identity belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(query.Values{"page": 1, "per_page": 100},
			func(ctx context.Context, v query.Values) (*api.Page[models.Organization], error) {
				return client.Organizations().List(ctx, v)
			},
			[]string{"ID", "Name", "Roles"},
			func(o models.Organization) []string {
				var roles []string
				if o.IsSponsor {
					roles = append(roles, "sponsor")
				}
				if o.IsProvider {
					roles = append(roles, "provider")
				}
				if o.IsValidator {
					roles = append(roles, "validator")
				}
				return []string{strconv.Itoa(o.ID), o.Name, strings.Join(roles, ", ")}
			})
	},
}

func init() {
	rootCmd.AddCommand(orgsCmd)
}
