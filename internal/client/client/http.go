package client

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

	"github.com/google/uuid"

	"github.com/dmitrijs2005/contractlens/internal/buildinfo"
	"github.com/dmitrijs2005/contractlens/internal/common"
	"github.com/dmitrijs2005/contractlens/internal/logging"
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultLongTimeout = 5 * time.Minute
)

// HTTPClient talks to the contract-analysis REST API. Every request gets
// the current bearer credential attached, and a 401 on a credentialed
// request clears the session and fires the session-expired handler.
type HTTPClient struct {
	baseURL     string
	http        *http.Client
	timeout     time.Duration
	longTimeout time.Duration
	userAgent   string

	creds     CredentialSource
	onExpired func(ctx context.Context)
	log       logging.Logger

	newRequestID func() string
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeouts sets the budget for ordinary requests and for the slow
// upload/analyze calls. Zero keeps the default.
func WithTimeouts(normal, long time.Duration) Option {
	return func(c *HTTPClient) {
		if normal > 0 {
			c.timeout = normal
		}
		if long > 0 {
			c.longTimeout = long
		}
	}
}

func WithCredentials(src CredentialSource) Option {
	return func(c *HTTPClient) { c.creds = src }
}

// WithSessionExpiredHandler registers fn to run once per rejected
// credentialed response, after the credential source has been cleared.
func WithSessionExpiredHandler(fn func(ctx context.Context)) Option {
	return func(c *HTTPClient) { c.onExpired = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.userAgent = ua }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{},
		timeout:      DefaultTimeout,
		longTimeout:  DefaultLongTimeout,
		userAgent:    common.AppName + "/" + buildinfo.Version(),
		log:          logging.NewNop(),
		newRequestID: func() string { return "req_" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	// long selects the extended timeout.
	long bool
}

func jsonRequest(method, path string, payload any) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("encode %s %s body: %w", method, path, err)
	}
	return request{method: method, path: path, body: bytes.NewReader(b), contentType: "application/json"}, nil
}

// authorize sets the Authorization header and returns the token it sent,
// or "" for an anonymous request.
func (c *HTTPClient) authorize(ctx context.Context, req *http.Request) string {
	token, ok := BearerFromContext(ctx)
	if !ok && c.creds != nil {
		token, ok = c.creds.Token()
	}
	if !ok || token == "" {
		req.Header.Del(common.AuthorizationHeaderName)
		return ""
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return token
}

// expire handles a rejected credential. A session that replaced sent while
// the request was in flight is left alone.
func (c *HTTPClient) expire(ctx context.Context, requestID, sent string) {
	if c.creds == nil {
		return
	}
	if !c.creds.Revoke(ctx, sent) {
		c.log.Debug(ctx, "rejected credential is no longer active", "request_id", requestID)
		return
	}

	c.log.Info(ctx, "credential rejected, session cleared", "request_id", requestID)
	if c.onExpired != nil {
		c.onExpired(ctx)
	}
}

// mapError translates transport failures into the package sentinels.
func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

// do sends req and decodes a 2xx JSON body into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, req request, out any) error {
	timeout := c.timeout
	if req.long {
		timeout = c.longTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", req.method, req.path, err)
	}

	requestID := c.newRequestID()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	sent := c.authorize(ctx, httpReq)

	log := c.log.With("method", req.method, "path", req.path, "request_id", requestID)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized && sent != "" {
		c.expire(ctx, requestID, sent)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp, requestID)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctx.Err() != nil {
			return c.mapError(ctx, ctx.Err())
		}
		return fmt.Errorf("decode %s %s response: %w", req.method, req.path, err)
	}
	return nil
}
