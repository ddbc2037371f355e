package api

import (
	"context"
	"fmt"
	"net/http"

	"fundesk/internal/models"
	"fundesk/internal/query"
)

// OfficeRequest is the payload for creating or updating an office.
type OfficeRequest struct {
	Address      string `json:"address" validate:"required,max=255"`
	Phone        string `json:"phone" validate:"omitempty,max=50"`
	BranchID     string `json:"branch_id,omitempty" validate:"omitempty,max=20"`
	BranchName   string `json:"branch_name,omitempty" validate:"omitempty,max=100"`
	BranchNumber string `json:"branch_number,omitempty" validate:"omitempty,numeric"`
}

// Validate checks the payload locally before it goes out.
func (r *OfficeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return localValidationError(err)
	}
	return nil
}

// OfficesService covers the provider office endpoints.
type OfficesService struct {
	c *Client
}

// Offices returns the office endpoints.
func (c *Client) Offices() *OfficesService { return &OfficesService{c: c} }

// List fetches one page of an organization's offices.
func (s *OfficesService) List(ctx context.Context, organizationID int, q query.Values) (*Page[models.Office], error) {
	return getPage[models.Office](ctx, s.c, organizationPath(organizationID, "/offices"), q)
}

// Get fetches a single office.
func (s *OfficesService) Get(ctx context.Context, organizationID, officeID int) (*models.Office, error) {
	return getOne[models.Office](ctx, s.c, organizationPath(organizationID, fmt.Sprintf("/offices/%d", officeID)))
}

// Create stores a new office.
func (s *OfficesService) Create(ctx context.Context, organizationID int, req *OfficeRequest) (*models.Office, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return send[models.Office](ctx, s.c, http.MethodPost, organizationPath(organizationID, "/offices"), req)
}

// Update modifies an existing office.
func (s *OfficesService) Update(ctx context.Context, organizationID, officeID int, req *OfficeRequest) (*models.Office, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	path := organizationPath(organizationID, fmt.Sprintf("/offices/%d", officeID))
	return send[models.Office](ctx, s.c, http.MethodPatch, path, req)
}

// Delete removes an office.
func (s *OfficesService) Delete(ctx context.Context, organizationID, officeID int) error {
	return s.c.delete(ctx, organizationPath(organizationID, fmt.Sprintf("/offices/%d", officeID)))
}
