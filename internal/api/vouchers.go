package api

import (
	"context"
	"fmt"
	"net/http"

	"fundesk/internal/models"
	"fundesk/internal/query"
)

// VouchersService covers the sponsor voucher endpoints.
type VouchersService struct {
	c *Client
}

// Vouchers returns the voucher endpoints.
func (c *Client) Vouchers() *VouchersService { return &VouchersService{c: c} }

// List fetches one page of an organization's vouchers.
func (s *VouchersService) List(ctx context.Context, organizationID int, q query.Values) (*Page[models.Voucher], error) {
	return getPage[models.Voucher](ctx, s.c, organizationPath(organizationID, "/sponsor/vouchers"), q)
}

// Get fetches a single voucher.
func (s *VouchersService) Get(ctx context.Context, organizationID, voucherID int) (*models.Voucher, error) {
	return getOne[models.Voucher](ctx, s.c, organizationPath(organizationID, fmt.Sprintf("/sponsor/vouchers/%d", voucherID)))
}

// Deactivate deactivates a voucher with an audit note.
func (s *VouchersService) Deactivate(ctx context.Context, organizationID, voucherID int, note string, notify bool) (*models.Voucher, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/sponsor/vouchers/%d/deactivate", voucherID))
	return send[models.Voucher](ctx, s.c, http.MethodPost, path, map[string]any{
		"note":   note,
		"notify": notify,
	})
}

// Activate re-activates a deactivated voucher.
func (s *VouchersService) Activate(ctx context.Context, organizationID, voucherID int, note string) (*models.Voucher, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/sponsor/vouchers/%d/activate", voucherID))
	return send[models.Voucher](ctx, s.c, http.MethodPost, path, map[string]any{"note": note})
}

// Send emails the voucher to an address.
func (s *VouchersService) Send(ctx context.Context, organizationID, voucherID int, email string) error {
	path := organizationPath(organizationID, fmt.Sprintf("/sponsor/vouchers/%d/send", voucherID))
	_, err := send[struct{}](ctx, s.c, http.MethodPost, path, map[string]any{"email": email})
	return err
}
