// Package client talks to a spoo.me-compatible URL shortening service:
// creating short and emoji URLs and fetching their click analytics.
package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/spoo-me/spoo-go/config"
)

// Client issues requests against one service endpoint. Instances are
// independent and hold no state between calls beyond the endpoint
// configuration; concurrent use is as safe as the underlying http.Client.
type Client struct {
	cfg  config.Config
	http *http.Client
}

// New builds a client for the endpoint in cfg.
func New(cfg config.Config) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// NewDefault builds a client for the public spoo.me endpoint.
func NewDefault() *Client {
	return New(config.Default())
}

// BaseURL returns the configured endpoint without a trailing slash.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.cfg.BaseURL, "/")
}

// postForm sends a single form-encoded POST to path and returns the raw
// status and body. It never retries and never interprets the status code;
// transport-level faults (DNS, refused connection, timeout) propagate
// untranslated from the HTTP client.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) (int, []byte, error) {
	endpoint := c.BaseURL() + path

	var body io.Reader
	if len(form) > 0 {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return 0, nil, err
	}
	if len(form) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	log.Debug().Str("url", endpoint).Int("form_fields", len(form)).Msg("POST")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	log.Debug().Str("url", endpoint).Int("status", resp.StatusCode).Int("bytes", len(data)).Msg("response")
	return resp.StatusCode, data, nil
}
