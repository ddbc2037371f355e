// Package api is the typed client for the platform REST API.
//
// Every call takes a context and returns either a decoded page/record or an
// error from the taxonomy in errors.go. The client performs no caching and
// no retries: each call is a fresh round trip, and races between concurrent
// list fetches are resolved by the caller (last write wins), never here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"fundesk/internal/query"
)

// DefaultTimeout is applied when the caller's context has no deadline.
const DefaultTimeout = 30 * time.Second

// Config configures a Client.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client talks to the platform API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a client for the given API base URL.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

type rawResponse struct {
	status      int
	body        []byte
	contentType string
}

// do performs one request and maps non-2xx statuses onto the error
// taxonomy. body may be nil for GET/DELETE.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (*rawResponse, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reqBody io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &rawResponse{
			status:      resp.StatusCode,
			body:        data,
			contentType: resp.Header.Get("Content-Type"),
		}, nil
	}
	return nil, errorFromResponse(resp.StatusCode, data)
}

// errorFromResponse maps an error response body onto the taxonomy.
func errorFromResponse(status int, body []byte) error {
	switch status {
	case http.StatusForbidden:
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &payload)
		return &PermissionError{Message: payload.Message}

	case http.StatusUnprocessableEntity:
		var payload struct {
			Message string              `json:"message"`
			Errors  map[string][]string `json:"errors"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return &ValidationError{Message: "validation failed"}
		}
		return &ValidationError{Message: payload.Message, Fields: payload.Errors}

	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		var payload struct {
			Meta struct {
				Title   string `json:"title"`
				Message string `json:"message"`
			} `json:"meta"`
		}
		_ = json.Unmarshal(body, &payload)
		return &RateLimitError{Title: payload.Meta.Title, Message: payload.Meta.Message}

	default:
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &payload)
		return &APIError{Status: status, Message: payload.Message}
	}
}

// getPage fetches one page of a paginated collection. Unset query keys are
// omitted from the request.
func getPage[T any](ctx context.Context, c *Client, path string, values query.Values) (*Page[T], error) {
	resp, err := c.do(ctx, http.MethodGet, path, values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var page Page[T]
	if err := json.Unmarshal(resp.body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %w", path, err)
	}
	return &page, nil
}

// getOne fetches a single resource from a {data: T} envelope.
func getOne[T any](ctx context.Context, c *Client, path string) (*T, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var env envelope[T]
	if err := json.Unmarshal(resp.body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode resource %s: %w", path, err)
	}
	return &env.Data, nil
}

// send issues a mutating request and decodes the {data: T} response.
func send[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	resp, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	if len(resp.body) == 0 {
		return new(T), nil
	}
	var env envelope[T]
	if err := json.Unmarshal(resp.body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
	}
	return &env.Data, nil
}

// delete issues a DELETE and discards the response body.
func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// organizationPath builds the /platform/organizations/<id>/... prefix
// shared by all dashboard endpoints.
func organizationPath(organizationID int, suffix string) string {
	return fmt.Sprintf("/platform/organizations/%d%s", organizationID, suffix)
}
