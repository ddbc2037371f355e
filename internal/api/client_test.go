package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundesk/internal/models"
	"fundesk/internal/query"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Token: "test-token"})
}

func writePage[T any](w http.ResponseWriter, data []T, meta Meta) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Page[T]{Data: data, Meta: meta})
}

func TestListSendsQueryAndOmitsUnset(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/platform/organizations/7/funds", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		gotQuery = r.URL.RawQuery
		writePage(w, []models.Fund{{ID: 1, Name: "Zorgfonds"}}, Meta{Total: 1, CurrentPage: 2, PerPage: 10, LastPage: 1})
	}))

	q := query.Values{"q": "zorg", "state": nil, "page": 2, "per_page": 10}
	page, err := c.Funds().List(context.Background(), 7, q)
	require.NoError(t, err)

	assert.Equal(t, "page=2&per_page=10&q=zorg", gotQuery)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, "Zorgfonds", page.Data[0].Name)
	assert.Equal(t, 2, page.Meta.CurrentPage)
}

func TestBulkStateFilterReplacesResults(t *testing.T) {
	bulks := map[string][]models.TransactionBulk{
		models.BulkStatePending:  {{ID: 1, State: models.BulkStatePending}, {ID: 2, State: models.BulkStatePending}},
		models.BulkStateAccepted: {{ID: 9, State: models.BulkStateAccepted}},
	}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		writePage(w, bulks[state], Meta{Total: len(bulks[state]), CurrentPage: 1, PerPage: 10, LastPage: 1})
	}))

	pending, err := c.TransactionBulks().List(context.Background(), 7, query.Values{"state": models.BulkStatePending})
	require.NoError(t, err)
	require.Len(t, pending.Data, 2)
	for _, b := range pending.Data {
		assert.Equal(t, models.BulkStatePending, b.State)
	}

	accepted, err := c.TransactionBulks().List(context.Background(), 7, query.Values{"state": models.BulkStateAccepted})
	require.NoError(t, err)
	require.Len(t, accepted.Data, 1)
	assert.Equal(t, 9, accepted.Data[0].ID)
	// The new page fully replaces the old one; no pending rows linger.
	assert.NotContains(t, accepted.Data, pending.Data[0])
}

func TestValidationErrorMapping(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"The given data was invalid.","errors":{"address":["The address field is required."]}}`)
	}))

	_, err := c.Offices().Update(context.Background(), 7, 3, &OfficeRequest{Address: "Herengracht 1"})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "The given data was invalid.", ve.Message)
	assert.Equal(t, []string{"The address field is required."}, ve.FieldErrors("address"))
	assert.True(t, IsValidation(err))
}

func TestPermissionErrorMapping(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"This action is unauthorized."}`)
	}))

	_, err := c.Vouchers().List(context.Background(), 7, query.Values{})
	require.Error(t, err)
	assert.True(t, IsPermission(err))
	assert.False(t, IsValidation(err))
}

func TestRateLimitErrorCarriesThrottleBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"meta":{"title":"Too many attempts","message":"Please wait 60 seconds."}}`)
	}))

	_, err := c.TransactionBulks().Build(context.Background(), 7)
	require.Error(t, err)

	var re *RateLimitError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Too many attempts", re.Title)
	assert.Equal(t, "Please wait 60 seconds.", re.Message)
}

func TestNetworkErrorOnUnreachableServer(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1", Token: ""})

	_, err := c.Funds().List(context.Background(), 7, query.Values{})
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestLocalValidationSkipsRoundTrip(t *testing.T) {
	requests := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := c.Products().Create(context.Background(), 7, &ProductRequest{Name: ""})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Zero(t, requests, "invalid payload must not reach the network")
}
