package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/metrics"
)

const (
	defaultTimeout            = 10 * time.Second
	errorBodyReadLimit  int64 = 2048
	headerAuthorization       = "Authorization"
	headerContentType         = "Content-Type"
	contentTypeJSON           = "application/json"
)

var errBaseURLRequired = errors.New("commerce backend base url is required")

// Client wraps the remote commerce backend's JSON API. Every call is a single
// request with no automatic retries; the caller re-triggers on failure.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured backend base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithMetrics wires per-endpoint request metrics.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the commerce backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return client, nil
}

// StatusError carries the non-success response from the backend.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
	Message  string
}

func (e *StatusError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.Status)
}

// UpstreamStatus implements the error dump surface.
func (e *StatusError) UpstreamStatus() int { return e.Status }

// UpstreamEndpoint implements the error dump surface.
func (e *StatusError) UpstreamEndpoint() string { return e.Endpoint }

// UpstreamBody implements the error dump surface.
func (e *StatusError) UpstreamBody() string { return e.Body }

// dataEnvelope matches the backend's common {"data": ...} wrapper.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// call issues one request against the backend and decodes the raw response
// body into out when out is non-nil.
func (c *Client) call(ctx context.Context, method, endpoint, path, token string, payload, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeUnavailable, "commerce backend client not configured")
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal "+endpoint+" request")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build "+endpoint+" request")
	}
	if payload != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(endpoint, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(endpoint)
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "execute "+endpoint+" request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.metrics.IncFailure(endpoint)
		return c.statusError(endpoint, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.metrics.IncFailure(endpoint)
			return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode "+endpoint+" response")
		}
	}
	c.metrics.IncSuccess(endpoint)
	return nil
}

// callData is call for endpoints wrapped in the {"data": ...} envelope.
func (c *Client) callData(ctx context.Context, method, endpoint, path, token string, payload, out any) error {
	var envelope dataEnvelope
	if err := c.call(ctx, method, endpoint, path, token, payload, &envelope); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		// Absent data decodes to the zero value, not an error.
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		c.metrics.IncFailure(endpoint)
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode "+endpoint+" payload")
	}
	return nil
}

func (c *Client) statusError(endpoint string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	body := strings.TrimSpace(string(raw))

	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(raw, &parsed)
	message := parsed.Message
	if message == "" {
		message = parsed.Error
	}

	statusErr := &StatusError{
		Endpoint: endpoint,
		Status:   resp.StatusCode,
		Body:     body,
		Message:  message,
	}

	code := pkgerrors.CodeUpstream
	publicMessage := endpoint + " request failed"
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = pkgerrors.CodeUnauthorized
		publicMessage = "authentication rejected by commerce backend"
	case http.StatusNotFound:
		code = pkgerrors.CodeNotFound
		publicMessage = "resource not found"
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = pkgerrors.CodeValidation
		if message != "" {
			publicMessage = message
		} else {
			publicMessage = "commerce backend rejected the request"
		}
	}
	return pkgerrors.Wrap(code, statusErr, publicMessage)
}

// Ping verifies the backend is reachable using the public settings endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "ping", "/admin/getsettinginfoforuser", "", nil, nil)
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}
