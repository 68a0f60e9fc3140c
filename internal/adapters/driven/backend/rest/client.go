// Package rest implements the resource and admin backends over the
// resource-matching service's HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.ResourceBackend = (*Client)(nil)
	_ driven.AdminBackend    = (*Client)(nil)
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4 << 10

// Config holds configuration for the service client.
type Config struct {
	// BaseURL is the service base URL (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds a single request (default: 120s).
	Timeout time.Duration

	// RatePerSecond throttles outbound requests. Zero disables throttling.
	RatePerSecond float64

	// HTTPClient overrides the underlying client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a Config from application settings.
func ConfigFromSettings(s domain.BackendSettings) Config {
	return Config{
		BaseURL:       s.URL,
		Timeout:       s.Timeout,
		RatePerSecond: s.RatePerSecond,
	}
}

// Client talks to the resource-matching service.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *RateLimiter
}

// NewClient creates a new service client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBackendURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = domain.DefaultBackendTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewRateLimiter(cfg.RatePerSecond),
	}
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call describes one request to the service.
type call struct {
	method  string
	path    string
	query   url.Values
	token   string
	body    any
	onStage domain.StageFunc
}

func (c *call) stage(s domain.RequestStage) {
	if c.onStage != nil {
		c.onStage(s)
	}
}

// do sends the call and decodes a 2xx JSON answer into out.
func (c *Client) do(ctx context.Context, cl call, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: wait for rate limiter: %w", cl.path, err)
	}

	var body io.Reader
	if cl.body != nil {
		jsonBody, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("X-Admin-Token", cl.token)
	}

	logger.Debug("%s %s (request %s)", cl.method, cl.path, requestID)
	cl.stage(domain.StageRequestStart)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", cl.path, ctxErr)
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrBackendUnavailable, cl.path, err)
	}
	defer resp.Body.Close()

	cl.stage(domain.StageResponseHeaders)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusTooManyRequests {
			c.limiter.Backoff(resp.Header.Get("Retry-After"))
		}
		statusErr := &StatusError{Code: resp.StatusCode, Path: cl.path, Detail: errorDetail(resp.Body)}
		logger.Debug("Request %s failed: %v", requestID, statusErr)
		return statusErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", cl.path, err)
		}
	}
	cl.stage(domain.StageBodyParsed)
	return nil
}

// errorDetail extracts FastAPI's {"detail": ...} from an error body,
// falling back to the raw text.
func errorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &payload) == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			return s
		}
		return string(payload.Detail)
	}
	return strings.TrimSpace(string(raw))
}

// okEnvelope is the {"ok": false, "error": ...} shape some admin
// endpoints answer with a 200.
type okEnvelope struct {
	OK    *bool  `json:"ok"`
	Error string `json:"error"`
}

func (e okEnvelope) err() error {
	if e.OK != nil && !*e.OK {
		msg := e.Error
		if msg == "" {
			msg = "request rejected"
		}
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
	}
	return nil
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
