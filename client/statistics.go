package client

import (
	"context"
	"net/url"

	"github.com/spoo-me/spoo-go/model"
)

// Statistics fetches and normalizes the click analytics for a short URL.
// shortCodeOrURL may be a bare code, an emoji sequence, or a full short URL;
// the trailing path segment is used (see model.NormalizeShortCode). password
// is sent as the only form field when non-empty and omitted entirely
// otherwise.
//
// One network fetch per call, no cache: construction either returns a fully
// populated record or an error, never a partial one. There is no refresh;
// call Statistics again for fresh data.
func (c *Client) Statistics(ctx context.Context, shortCodeOrURL string, password string) (*model.Statistics, error) {
	code := model.NormalizeShortCode(shortCodeOrURL)

	form := url.Values{}
	if password != "" {
		form.Set("password", password)
	}

	status, body, err := c.postForm(ctx, "/stats/"+code, form)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, &RequestError{StatusCode: status, Body: string(body)}
	}

	stats, err := model.ParseStatistics(body)
	if err != nil {
		return nil, err
	}
	stats.ShortCode = code
	return stats, nil
}
