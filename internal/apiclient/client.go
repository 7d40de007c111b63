// Package apiclient talks to the remote staffing API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/observability"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

const defaultHTTPTimeout = 10 * time.Second

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client is an HTTP client for the staffing API. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for transport failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics records every call.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(c *Client) { c.metrics = metrics }
}

// NewClient creates a new API client.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client calls.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type errorResponse struct {
	Message string `json:"message"`
}

// do performs one call. Transport problems (including an unreadable 2xx
// body) become TRANSPORT_FAILED; non-2xx answers become REMOTE_REJECTED
// carrying the server's message.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordRemoteCall(path, method, "transport", time.Since(start))
		c.logger.Error("staffing api unreachable",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return apperrors.NewTransportError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.RecordRemoteCall(path, method, "rejected", time.Since(start))
		return decodeError(path, resp)
	}

	if out == nil {
		c.metrics.RecordRemoteCall(path, method, "ok", time.Since(start))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		c.metrics.RecordRemoteCall(path, method, "transport", time.Since(start))
		c.logger.Error("staffing api returned an unreadable body",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return apperrors.NewTransportError(path, err)
	}
	c.metrics.RecordRemoteCall(path, method, "ok", time.Since(start))
	return nil
}

func decodeError(path string, resp *http.Response) error {
	var errResp errorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &errResp)
	}
	return apperrors.NewRemoteRejected(path, resp.StatusCode, strings.TrimSpace(errResp.Message))
}
