package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/spoo-me/spoo-go/model"
)

// ShortenOption sets an optional creation field. Fields left unset are
// omitted from the form payload entirely, never sent empty or null; all
// validation of their values is the service's job.
type ShortenOption func(*shortenRequest)

type shortenRequest struct {
	password   string
	maxClicks  int
	alias      string
	emojiAlias string
}

// WithPassword protects the short URL with a password.
func WithPassword(password string) ShortenOption {
	return func(r *shortenRequest) { r.password = password }
}

// WithMaxClicks caps the number of clicks before the short URL expires.
// Out-of-range values are forwarded as-is; a rejection surfaces as a
// *RequestError.
func WithMaxClicks(maxClicks int) ShortenOption {
	return func(r *shortenRequest) { r.maxClicks = maxClicks }
}

// WithAlias requests a custom alias. Ignored by Emojify.
func WithAlias(alias string) ShortenOption {
	return func(r *shortenRequest) { r.alias = alias }
}

// WithEmojiAlias requests a custom emoji sequence. Ignored by Shorten.
func WithEmojiAlias(emojiAlias string) ShortenOption {
	return func(r *shortenRequest) { r.emojiAlias = emojiAlias }
}

// Shorten creates a short URL for longURL and returns it. Non-200 responses
// become a *RequestError with the status and body verbatim; a 200 response
// that is not valid JSON becomes a *model.DecodeError.
func (c *Client) Shorten(ctx context.Context, longURL string, opts ...ShortenOption) (string, error) {
	var r shortenRequest
	for _, opt := range opts {
		opt(&r)
	}

	form := url.Values{"url": {longURL}}
	if r.password != "" {
		form.Set("password", r.password)
	}
	if r.maxClicks != 0 {
		form.Set("max_clicks", strconv.Itoa(r.maxClicks))
	}
	if r.alias != "" {
		form.Set("alias", r.alias)
	}

	return c.createShortURL(ctx, "/", form)
}

// Emojify creates an emoji-aliased short URL for longURL and returns it.
// Error conventions match Shorten.
func (c *Client) Emojify(ctx context.Context, longURL string, opts ...ShortenOption) (string, error) {
	var r shortenRequest
	for _, opt := range opts {
		opt(&r)
	}

	form := url.Values{"url": {longURL}}
	if r.password != "" {
		form.Set("password", r.password)
	}
	if r.maxClicks != 0 {
		form.Set("max_clicks", strconv.Itoa(r.maxClicks))
	}
	if r.emojiAlias != "" {
		form.Set("emojies", r.emojiAlias) // wire name, sic
	}

	return c.createShortURL(ctx, "/emoji", form)
}

func (c *Client) createShortURL(ctx context.Context, path string, form url.Values) (string, error) {
	status, body, err := c.postForm(ctx, path, form)
	if err != nil {
		return "", err
	}
	if status != 200 {
		return "", &RequestError{StatusCode: status, Body: string(body)}
	}

	var resp struct {
		ShortURL string `json:"short_url"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &model.DecodeError{Err: err}
	}

	log.Debug().Str("short_url", resp.ShortURL).Msg("short URL created")
	return resp.ShortURL, nil
}
