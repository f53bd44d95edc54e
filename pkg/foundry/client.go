package foundry

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/logging"
)

const (
	defaultAPIVersion = "2025-05-15-preview"
	defaultTimeout    = 60 * time.Second
	tracerName        = "github.com/strudel0209/ai-foundry-agents-practical/pkg/foundry"
)

// Client is a typed REST client for the Azure AI Foundry agents data plane.
// It is a thin pass-through: every method maps to a single service call.
type Client struct {
	endpoint   string
	apiVersion string
	httpClient *http.Client
	cred       TokenProvider
	logger     logging.Logger
	tracer     trace.Tracer
}

// Option configures the client
type Option func(*Client)

// WithCredential sets the token provider used to authorize requests
func WithCredential(cred TokenProvider) Option {
	return func(c *Client) { c.cred = cred }
}

// WithAPIVersion overrides the data-plane API version
func WithAPIVersion(version string) Option {
	return func(c *Client) { c.apiVersion = version }
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithLogger sets a custom logger
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the given project endpoint
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("project endpoint is required")
	}

	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiVersion: defaultAPIVersion,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.New(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cred == nil {
		cred, err := NewAzureCredential()
		if err != nil {
			return nil, err
		}
		c.cred = cred
	}

	return c, nil
}

// Endpoint returns the project endpoint the client talks to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// APIError is the decoded service error envelope
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("agent service returned %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("agent service returned %d: %s", e.Status, e.Message)
}

type errorEnvelope struct {
	Error APIError `json:"error"`
}

// do executes one service call: marshal body, authorize, decode out
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	ctx, span := c.tracer.Start(ctx, "foundry."+method+" "+path,
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("foundry.path", path),
		))
	defer span.End()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, resp.Status)
		return decodeAPIError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// newRequest builds an authorized request with the api-version query parameter
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	reqURL, err := url.Parse(c.endpoint + path)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("api-version", c.apiVersion)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if err := c.cred.Authorize(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to authorize request: %w", err)
	}
	return req, nil
}

func decodeAPIError(status int, data []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
		envelope.Error.Status = status
		return &envelope.Error
	}
	return &APIError{Status: status, Message: strings.TrimSpace(string(data))}
}

func unmarshalJSON(data []byte, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// page is the list envelope the service wraps collections in
type page[T any] struct {
	Object  string `json:"object"`
	Data    []T    `json:"data"`
	FirstID string `json:"first_id"`
	LastID  string `json:"last_id"`
	HasMore bool   `json:"has_more"`
}
