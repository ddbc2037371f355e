package api

import (
	"context"
	"fmt"
	"net/http"

	"fundesk/internal/models"
	"fundesk/internal/query"
)

// ProvidersService covers the sponsor-side view of fund providers.
type ProvidersService struct {
	c *Client
}

// Providers returns the sponsor provider endpoints.
func (c *Client) Providers() *ProvidersService { return &ProvidersService{c: c} }

// List fetches one page of providers applying to or active on the
// organization's funds.
func (s *ProvidersService) List(ctx context.Context, organizationID int, q query.Values) (*Page[models.FundProvider], error) {
	return getPage[models.FundProvider](ctx, s.c, organizationPath(organizationID, "/providers"), q)
}

// Get fetches a single fund provider record.
func (s *ProvidersService) Get(ctx context.Context, organizationID, fundID, providerID int) (*models.FundProvider, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/funds/%d/providers/%d", fundID, providerID))
	return getOne[models.FundProvider](ctx, s.c, path)
}

// Approve accepts a provider on a fund, optionally for budget and/or
// product redemption.
func (s *ProvidersService) Approve(ctx context.Context, organizationID, fundID, providerID int, allowBudget, allowProducts bool) (*models.FundProvider, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/funds/%d/providers/%d", fundID, providerID))
	body := map[string]any{
		"state":          "accepted",
		"allow_budget":   allowBudget,
		"allow_products": allowProducts,
	}
	return send[models.FundProvider](ctx, s.c, http.MethodPatch, path, body)
}

// Decline rejects a provider on a fund.
func (s *ProvidersService) Decline(ctx context.Context, organizationID, fundID, providerID int) (*models.FundProvider, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/funds/%d/providers/%d", fundID, providerID))
	return send[models.FundProvider](ctx, s.c, http.MethodPatch, path, map[string]any{"state": "rejected"})
}

// ProviderFundsService covers the provider-side view: which funds this
// organization can apply to and where it is already active.
type ProviderFundsService struct {
	c *Client
}

// ProviderFunds returns the provider fund endpoints.
func (c *Client) ProviderFunds() *ProviderFundsService { return &ProviderFundsService{c: c} }

// ListAvailable fetches funds open for application. The response meta
// carries per-tab totals (active, pending, available, archived, ...).
func (s *ProviderFundsService) ListAvailable(ctx context.Context, organizationID int, q query.Values) (*Page[models.Fund], error) {
	return getPage[models.Fund](ctx, s.c, organizationPath(organizationID, "/provider/funds-available"), q)
}

// List fetches the funds this provider is attached to, filtered by state.
func (s *ProviderFundsService) List(ctx context.Context, organizationID int, q query.Values) (*Page[models.FundProvider], error) {
	return getPage[models.FundProvider](ctx, s.c, organizationPath(organizationID, "/provider/funds"), q)
}

// Apply requests participation on a fund.
func (s *ProviderFundsService) Apply(ctx context.Context, organizationID, fundID int) (*models.FundProvider, error) {
	path := organizationPath(organizationID, "/provider/funds")
	return send[models.FundProvider](ctx, s.c, http.MethodPost, path, map[string]any{"fund_id": fundID})
}

// Unsubscribe files an unsubscription request for an active fund.
func (s *ProviderFundsService) Unsubscribe(ctx context.Context, organizationID, fundProviderID int, note string) error {
	path := organizationPath(organizationID, "/provider/fund-unsubscribes")
	_, err := send[struct{}](ctx, s.c, http.MethodPost, path, map[string]any{
		"fund_provider_id": fundProviderID,
		"note":             note,
	})
	return err
}
