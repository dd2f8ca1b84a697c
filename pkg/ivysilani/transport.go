package ivysilani

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// previewBytes caps how much of a response body verbose logging prints.
const previewBytes = 100

// endpoint maps a target to an absolute URL. Targets starting with "/" live on
// the web host; anything else is "host/path".
func (c *Client) endpoint(target string) (string, error) {
	host, path := webHost, target
	if !strings.HasPrefix(target, "/") {
		h, p, ok := strings.Cut(target, "/")
		if !ok || h == "" {
			return "", fmt.Errorf("invalid target %q", target)
		}
		host, path = h, "/"+p
	}
	base, ok := c.hosts[host]
	if !ok {
		base = "https://" + host
	}
	return strings.TrimSuffix(base, "/") + path, nil
}

// fetch performs a single request and returns the decoded body. Every failure
// wraps ErrNoData so callers can treat it as absence.
func (c *Client) fetch(ctx context.Context, target string, params url.Values, method string) ([]byte, error) {
	endpoint, err := c.endpoint(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}

	var body io.Reader
	if method == http.MethodPost {
		body = strings.NewReader(params.Encode())
	} else if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrNoData, err)
	}
	c.setHeaders(req)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if c.verbose() {
		c.log.Info("sending request", "method", method, "url", endpoint, "params", redact(params))
	}

	resp, err := c.do(req)
	if err != nil {
		if c.log != nil {
			c.log.Error("request failed", "url", endpoint, "error", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.verbose() {
		c.log.Info("response received",
			"status", resp.StatusCode,
			"content_length", resp.Header.Get("Content-Length"),
			"content_encoding", resp.Header.Get("Content-Encoding"),
		)
	}

	if resp.StatusCode != http.StatusOK {
		if c.log != nil {
			c.log.Error("unexpected response status", "url", endpoint, "status", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: unexpected status %d", ErrNoData, resp.StatusCode)
	}

	reader, err := decodeBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNoData, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrNoData)
	}

	if c.verbose() {
		c.log.Info("received data", "preview", string(data[:min(len(data), previewBytes)]))
	}
	return data, nil
}

// get issues a plain GET against an absolute URL with the client headers and
// returns the decoded body. The caller closes it.
func (c *Client) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := decodeBody(resp)
	if err != nil {
		_ = resp.Body.Close()
		return nil, err
	}
	return body, nil
}

// do sends req once the rate limiter allows it.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return c.httpClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept-Encoding", EncodingGzip)
	req.Header.Set("Connection", "Keep-Alive")
	req.Header.Set("User-Agent", c.userAgent)
}

// redact hides the bearer token from logged parameters.
func redact(params url.Values) string {
	if params.Get("token") == "" {
		return params.Encode()
	}
	safe := make(url.Values, len(params))
	for k, v := range params {
		safe[k] = v
	}
	safe.Set("token", "***")
	return safe.Encode()
}
