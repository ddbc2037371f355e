package api

import (
	"context"
	"fmt"
	"net/http"

	"fundesk/internal/models"
	"fundesk/internal/query"
)

// FundsService covers the sponsor fund endpoints.
type FundsService struct {
	c *Client
}

// Funds returns the fund endpoints.
func (c *Client) Funds() *FundsService { return &FundsService{c: c} }

// List fetches one page of an organization's funds.
func (s *FundsService) List(ctx context.Context, organizationID int, q query.Values) (*Page[models.Fund], error) {
	return getPage[models.Fund](ctx, s.c, organizationPath(organizationID, "/funds"), q)
}

// Get fetches a single fund.
func (s *FundsService) Get(ctx context.Context, organizationID, fundID int) (*models.Fund, error) {
	return getOne[models.Fund](ctx, s.c, organizationPath(organizationID, fmt.Sprintf("/funds/%d", fundID)))
}

// Archive archives a fund.
func (s *FundsService) Archive(ctx context.Context, organizationID, fundID int) (*models.Fund, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/funds/%d/archive", fundID))
	return send[models.Fund](ctx, s.c, http.MethodPost, path, nil)
}

// TopUp requests top-up payment details for a fund.
func (s *FundsService) TopUp(ctx context.Context, organizationID, fundID int) (*models.Fund, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/funds/%d/top-up", fundID))
	return send[models.Fund](ctx, s.c, http.MethodPost, path, nil)
}

// ProviderProduct fetches one product of one provider on a fund, as seen
// by the sponsor.
func (s *FundsService) ProviderProduct(ctx context.Context, organizationID, fundID, providerID, productID int) (*models.Product, error) {
	path := organizationPath(organizationID,
		fmt.Sprintf("/funds/%d/providers/%d/products/%d", fundID, providerID, productID))
	return getOne[models.Product](ctx, s.c, path)
}
