package api

import (
	"context"
	"fmt"
	"net/http"

	"fundesk/internal/models"
	"fundesk/internal/query"
)

// TransactionsService covers the payout transaction endpoints.
type TransactionsService struct {
	c *Client
}

// Transactions returns the transaction endpoints.
func (c *Client) Transactions() *TransactionsService { return &TransactionsService{c: c} }

// List fetches one page of the organization's transactions.
func (s *TransactionsService) List(ctx context.Context, organizationID int, q query.Values) (*Page[models.Transaction], error) {
	return getPage[models.Transaction](ctx, s.c, organizationPath(organizationID, "/sponsor/transactions"), q)
}

// Get fetches a single transaction by its address.
func (s *TransactionsService) Get(ctx context.Context, organizationID int, uid string) (*models.Transaction, error) {
	return getOne[models.Transaction](ctx, s.c, organizationPath(organizationID, "/sponsor/transactions/"+uid))
}

// TransactionBulksService covers the bulk-payment endpoints.
type TransactionBulksService struct {
	c *Client
}

// TransactionBulks returns the bulk-payment endpoints.
func (c *Client) TransactionBulks() *TransactionBulksService { return &TransactionBulksService{c: c} }

// List fetches one page of the organization's transaction bulks.
func (s *TransactionBulksService) List(ctx context.Context, organizationID int, q query.Values) (*Page[models.TransactionBulk], error) {
	return getPage[models.TransactionBulk](ctx, s.c, organizationPath(organizationID, "/sponsor/transaction-bulks"), q)
}

// Get fetches a single transaction bulk.
func (s *TransactionBulksService) Get(ctx context.Context, organizationID, bulkID int) (*models.TransactionBulk, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/sponsor/transaction-bulks/%d", bulkID))
	return getOne[models.TransactionBulk](ctx, s.c, path)
}

// Reset re-submits a rejected or failed bulk to the bank. For Bunq bulks
// this restarts the mobile-app approval; for BNG it yields a fresh
// authorization URL.
func (s *TransactionBulksService) Reset(ctx context.Context, organizationID, bulkID int) (*models.TransactionBulk, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/sponsor/transaction-bulks/%d", bulkID))
	return send[models.TransactionBulk](ctx, s.c, http.MethodPatch, path, map[string]any{"state": models.BulkStatePending})
}

// SetAccepted marks a manually settled bulk as accepted.
func (s *TransactionBulksService) SetAccepted(ctx context.Context, organizationID, bulkID int) (*models.TransactionBulk, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/sponsor/transaction-bulks/%d", bulkID))
	return send[models.TransactionBulk](ctx, s.c, http.MethodPatch, path, map[string]any{"state": models.BulkStateAccepted})
}

// Build asks the server to batch the currently pending transactions into
// new bulks.
func (s *TransactionBulksService) Build(ctx context.Context, organizationID int) (*models.TransactionBulk, error) {
	path := organizationPath(organizationID, "/sponsor/transaction-bulks")
	return send[models.TransactionBulk](ctx, s.c, http.MethodPost, path, nil)
}
