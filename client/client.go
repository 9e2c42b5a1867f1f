// Package client the remote URL shortening API client.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jbaldus/shorten"
)

const (
	// DefaultEndpoint the shortening API endpoint
	DefaultEndpoint = "https://is.gd/create.php"
	// DefaultTimeout the request timeout
	DefaultTimeout = 30 * time.Second

	maxBodySize = 8 * 1024
)

var (
	// DefaultHeaders defaults request headers
	DefaultHeaders = map[string]string{
		"Accept":     "text/plain",
		"User-Agent": "shorten/" + shorten.Version,
	}
	// ErrEmptyResult the provider returned an empty body.
	// An empty result must never be treated as a shortened URL.
	ErrEmptyResult = errors.New("provider returned an empty result")
)

// Options the Client options
type Options struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Client requests shortened URLs from the remote provider.
// One Shorten call issues exactly one request, there is no retry.
type Client struct {
	*http.Client
	endpoint string
	host     string
}

// New returns a new Client for the given options.
func New(opt Options) (*Client, error) {
	endpoint := zeroOr(opt.Endpoint, DefaultEndpoint)
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	return &Client{
		Client:   &http.Client{Timeout: zeroOr(opt.Timeout, DefaultTimeout)},
		endpoint: endpoint,
		host:     u.Hostname(),
	}, nil
}

// Host returns the provider host, e.g. "is.gd".
// URLs already on this host need no shortening.
func (c *Client) Host() string { return c.host }

// Shorten sends rawURL to the provider and returns the shortened URL.
// The form asks for a lower-case pronounceable slug and a plain-text
// response body. A non-2xx status or an empty body is an error.
func (c *Client) Shorten(ctx context.Context, rawURL string) (string, error) {
	form := url.Values{
		"url":    {rawURL},
		"opt":    {"pron"},
		"format": {"simple"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range DefaultHeaders {
		req.Header.Set(k, v)
	}

	res, err := c.Do(req)
	if err != nil {
		return "", fmt.Errorf("shorten %q: %w", rawURL, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("shorten %q: %w", rawURL, err)
	}
	result := strings.TrimSpace(string(body))

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("shorten %q: unexpected status %s: %s", rawURL, res.Status, result)
	}
	if result == "" {
		return "", ErrEmptyResult
	}
	return result, nil
}

func zeroOr[T comparable](value, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}
