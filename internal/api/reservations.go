package api

import (
	"context"
	"fmt"
	"net/http"

	"fundesk/internal/models"
	"fundesk/internal/query"
)

// ReservationsService covers the provider reservation endpoints.
type ReservationsService struct {
	c *Client
}

// Reservations returns the reservation endpoints.
func (c *Client) Reservations() *ReservationsService { return &ReservationsService{c: c} }

// List fetches one page of the organization's product reservations.
func (s *ReservationsService) List(ctx context.Context, organizationID int, q query.Values) (*Page[models.Reservation], error) {
	return getPage[models.Reservation](ctx, s.c, organizationPath(organizationID, "/product-reservations"), q)
}

// Get fetches a single reservation.
func (s *ReservationsService) Get(ctx context.Context, organizationID, reservationID int) (*models.Reservation, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/product-reservations/%d", reservationID))
	return getOne[models.Reservation](ctx, s.c, path)
}

// Accept accepts a pending reservation.
func (s *ReservationsService) Accept(ctx context.Context, organizationID, reservationID int) (*models.Reservation, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/product-reservations/%d/accept", reservationID))
	return send[models.Reservation](ctx, s.c, http.MethodPost, path, nil)
}

// Reject rejects a pending reservation.
func (s *ReservationsService) Reject(ctx context.Context, organizationID, reservationID int) (*models.Reservation, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/product-reservations/%d/reject", reservationID))
	return send[models.Reservation](ctx, s.c, http.MethodPost, path, nil)
}

// Archive moves a settled reservation out of the active list.
func (s *ReservationsService) Archive(ctx context.Context, organizationID, reservationID int) (*models.Reservation, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/product-reservations/%d/archive", reservationID))
	return send[models.Reservation](ctx, s.c, http.MethodPost, path, nil)
}

// Unarchive restores an archived reservation.
func (s *ReservationsService) Unarchive(ctx context.Context, organizationID, reservationID int) (*models.Reservation, error) {
	path := organizationPath(organizationID, fmt.Sprintf("/product-reservations/%d/unarchive", reservationID))
	return send[models.Reservation](ctx, s.c, http.MethodPost, path, nil)
}
