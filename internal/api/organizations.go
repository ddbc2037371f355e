package api

import (
	"context"
	"fmt"

	"fundesk/internal/models"
	"fundesk/internal/query"
)

// OrganizationsService covers organization lookup and the feature catalog.
type OrganizationsService struct {
	c *Client
}

// Organizations returns the organization endpoints.
func (c *Client) Organizations() *OrganizationsService { return &OrganizationsService{c: c} }

// List fetches the organizations the current identity belongs to.
func (s *OrganizationsService) List(ctx context.Context, q query.Values) (*Page[models.Organization], error) {
	return getPage[models.Organization](ctx, s.c, "/platform/organizations", q)
}

// Get fetches a single organization.
func (s *OrganizationsService) Get(ctx context.Context, organizationID int) (*models.Organization, error) {
	return getOne[models.Organization](ctx, s.c, fmt.Sprintf("/platform/organizations/%d", organizationID))
}

// Features fetches the full feature catalog for an organization. The
// catalog is small and intended to be refined client-side, not paginated.
func (s *OrganizationsService) Features(ctx context.Context, organizationID int) ([]models.Feature, error) {
	page, err := getPage[models.Feature](ctx, s.c, organizationPath(organizationID, "/features"), query.Values{})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}
