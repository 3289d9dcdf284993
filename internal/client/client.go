// Package client performs JSON requests against the TestDino REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/testdino/testdino-mcp/internal/common"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 50 << 20

// Options describes one outgoing request.
type Options struct {
	// Method defaults to GET.
	Method string
	// Headers are applied after the default Content-Type, so they win on collision.
	Headers map[string]string
	// Body is JSON-encoded when non-nil.
	Body any
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	StatusText string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed: %d %s\n%s", e.StatusCode, e.StatusText, e.Body)
}

// Client sends requests to the TestDino API.
type Client struct {
	httpClient *http.Client
	logger     *common.Logger
}

// New creates a Client. A zero timeout leaves the transport default in place.
func New(logger *common.Logger, timeout time.Duration) *Client {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// NewWithHTTPClient creates a Client around an existing http.Client.
func NewWithHTTPClient(logger *common.Logger, hc *http.Client) *Client {
	c := New(logger, 0)
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// Do sends the request and returns the raw response. The caller closes the body.
func (c *Client) Do(ctx context.Context, url string, opts Options) (*http.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", url).
		Msg("API Request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Err(err).Str("url", url).Dur("duration", duration).Msg("API Request Failed")
		return nil, err
	}

	c.logger.Debug().
		Str("status", resp.Status).
		Int("status_code", resp.StatusCode).
		Dur("duration", duration).
		Msg("API Response")

	return resp, nil
}

// DoJSON sends the request and decodes a 2xx JSON body into out.
// Non-2xx responses yield a *StatusError carrying the raw body.
func (c *Client) DoJSON(ctx context.Context, url string, opts Options, out any) error {
	resp, err := c.Do(ctx, url, opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			Body:       string(body),
		}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// RequestJSON is DoJSON with the decoded value returned.
func RequestJSON[T any](ctx context.Context, c *Client, url string, opts Options) (T, error) {
	var out T
	err := c.DoJSON(ctx, url, opts, &out)
	return out, err
}

// BearerAuth returns the Authorization header for token.
func BearerAuth(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// statusText returns the reason phrase as sent by the server.
func statusText(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode) + " "
	if text := strings.TrimPrefix(resp.Status, prefix); text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
