package ivysilani

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// tokenUser identifies the client to the token endpoint.
const tokenUser = "iDevicesMotion"

// currentToken returns the cached token, fetching one if none is cached.
func (c *Client) currentToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	token := c.token
	c.tokenMu.Unlock()

	if token != "" {
		return token, nil
	}
	return c.refreshToken(ctx)
}

// refreshToken fetches a new token and replaces the cached one.
func (c *Client) refreshToken(ctx context.Context) (string, error) {
	data, err := c.fetch(ctx, tokenPath, url.Values{"user": {tokenUser}}, http.MethodPost)
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}

	root, err := parseXML(data)
	if err != nil {
		return "", fmt.Errorf("%w: parse token: %w", ErrNoData, err)
	}
	if root.isErrors() {
		return "", fmt.Errorf("fetch token: %w", root.apiError())
	}
	token := root.text()
	if token == "" {
		return "", fmt.Errorf("%w: token response is empty", ErrNoData)
	}

	c.tokenMu.Lock()
	c.token = token
	c.tokenMu.Unlock()

	if c.log != nil {
		c.log.Debug("token refreshed")
	}
	return token, nil
}

// fetchXML performs an authenticated request against the XML API.
//
// A rejected token is refreshed and the request is sent exactly once more;
// whatever the second attempt returns is final.
func (c *Client) fetchXML(ctx context.Context, path string, params url.Values) (*node, error) {
	root, err := c.attemptXML(ctx, path, params)
	if err == nil {
		return root, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.TokenInvalid() {
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("token rejected, refreshing", "reason", apiErr.Error())
	}
	if _, err := c.refreshToken(ctx); err != nil {
		return nil, err
	}
	return c.attemptXML(ctx, path, params)
}

// attemptXML sends one request with the current token and parses the envelope.
func (c *Client) attemptXML(ctx context.Context, path string, params url.Values) (*node, error) {
	token, err := c.currentToken(ctx)
	if err != nil {
		return nil, err
	}

	signed := make(url.Values, len(params)+1)
	for k, v := range params {
		signed[k] = v
	}
	signed.Set("token", token)

	data, err := c.fetch(ctx, path, signed, http.MethodPost)
	if err != nil {
		return nil, err
	}

	root, err := parseXML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrNoData, err)
	}
	if root.isErrors() {
		return nil, root.apiError()
	}
	return root, nil
}
