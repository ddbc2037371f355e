package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"fundesk/internal/models"
	"fundesk/internal/query"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ProductRequest is the payload for creating or updating a product.
// Local validation catches the obvious misses before a round trip; the
// server remains authoritative and may still answer 422.
type ProductRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Description    string `json:"description" validate:"required"`
	Price          string `json:"price" validate:"required"`
	PriceType      string `json:"price_type" validate:"required,oneof=regular discount_fixed discount_percentage free"`
	Stock          int    `json:"stock_amount" validate:"min=0"`
	Unlimited      bool   `json:"unlimited_stock"`
	ExpireAt       string `json:"expire_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Validate checks the payload locally, returning a *ValidationError with
// the same shape the server would produce.
func (r *ProductRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	return localValidationError(err)
}

// localValidationError converts validator output into the API error shape
// so callers handle both identically.
func localValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Message: err.Error()}
	}
	fields := map[string][]string{}
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()],
			fmt.Sprintf("failed on the %q rule", fe.Tag()))
	}
	return &ValidationError{Message: "validation failed", Fields: fields}
}

// ProductsService covers the provider product endpoints.
type ProductsService struct {
	c *Client
}

// Products returns the product endpoints.
func (c *Client) Products() *ProductsService { return &ProductsService{c: c} }

// List fetches one page of an organization's products.
func (s *ProductsService) List(ctx context.Context, organizationID int, q query.Values) (*Page[models.Product], error) {
	return getPage[models.Product](ctx, s.c, organizationPath(organizationID, "/products"), q)
}

// Get fetches a single product.
func (s *ProductsService) Get(ctx context.Context, organizationID, productID int) (*models.Product, error) {
	return getOne[models.Product](ctx, s.c, organizationPath(organizationID, fmt.Sprintf("/products/%d", productID)))
}

// Create stores a new product.
func (s *ProductsService) Create(ctx context.Context, organizationID int, req *ProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return send[models.Product](ctx, s.c, http.MethodPost, organizationPath(organizationID, "/products"), req)
}

// Update modifies an existing product.
func (s *ProductsService) Update(ctx context.Context, organizationID, productID int, req *ProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	path := organizationPath(organizationID, fmt.Sprintf("/products/%d", productID))
	return send[models.Product](ctx, s.c, http.MethodPatch, path, req)
}

// Delete removes a product.
func (s *ProductsService) Delete(ctx context.Context, organizationID, productID int) error {
	return s.c.delete(ctx, organizationPath(organizationID, fmt.Sprintf("/products/%d", productID)))
}
