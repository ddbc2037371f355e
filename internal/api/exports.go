package api

import (
	"context"
	"mime"
	"net/http"
	"strings"

	"fundesk/internal/query"
)

// ExportFile is a generated export payload: raw bytes plus the extension
// derived from the response content type.
type ExportFile struct {
	Data        []byte
	ContentType string
	Ext         string
}

// ExportsService covers the collection export endpoints. Exports accept
// the same filters as the matching list endpoint plus the data_format
// field (csv or xls).
type ExportsService struct {
	c *Client
}

// Exports returns the export endpoints.
func (c *Client) Exports() *ExportsService { return &ExportsService{c: c} }

// Transactions exports an organization's transactions.
func (s *ExportsService) Transactions(ctx context.Context, organizationID int, q query.Values) (*ExportFile, error) {
	return s.fetch(ctx, organizationPath(organizationID, "/sponsor/transactions/export"), q)
}

// Vouchers exports an organization's vouchers.
func (s *ExportsService) Vouchers(ctx context.Context, organizationID int, q query.Values) (*ExportFile, error) {
	return s.fetch(ctx, organizationPath(organizationID, "/sponsor/vouchers/export"), q)
}

// Reservations exports an organization's product reservations.
func (s *ExportsService) Reservations(ctx context.Context, organizationID int, q query.Values) (*ExportFile, error) {
	return s.fetch(ctx, organizationPath(organizationID, "/product-reservations/export"), q)
}

func (s *ExportsService) fetch(ctx context.Context, path string, q query.Values) (*ExportFile, error) {
	resp, err := s.c.do(ctx, http.MethodGet, path, q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Data:        resp.body,
		ContentType: resp.contentType,
		Ext:         extFromContentType(resp.contentType),
	}, nil
}

// extFromContentType maps an export content type onto a file extension.
// Unknown types fall back to the requested csv.
func extFromContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "csv"
	}
	switch {
	case mediaType == "text/csv":
		return "csv"
	case mediaType == "application/vnd.ms-excel":
		return "xls"
	case strings.HasSuffix(mediaType, "spreadsheetml.sheet"):
		return "xlsx"
	case mediaType == "application/zip":
		return "zip"
	default:
		return "csv"
	}
}
