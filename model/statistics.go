package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Statistics is the normalized click-analytics snapshot for one short URL.
// It is fully populated in a single decode step and never mutated afterwards;
// fresh data requires fetching a new record. Pointer fields are nil when the
// service reported no value.
type Statistics struct {
	ShortCode    string
	LongURL      string
	CreatedAt    string
	CreationTime *string
	Password     *string
	Expired      bool

	TotalClicks          int
	TotalUniqueClicks    int
	MaxClicks            *int
	AverageDailyClicks   float64
	AverageWeeklyClicks  float64
	AverageMonthlyClicks float64

	LastClick         *string
	LastClickBrowser  *string
	LastClickPlatform *string

	Browsers           *Breakdown
	ClicksByDate       *Breakdown
	Countries          *Breakdown
	Platforms          *Breakdown
	Referrers          *Breakdown
	UniqueBrowsers     *Breakdown
	UniqueClicksByDate *Breakdown
	UniqueCountries    *Breakdown
	UniquePlatforms    *Breakdown
	UniqueReferrers    *Breakdown

	raw []byte
}

// RawJSON returns the response body the record was decoded from, verbatim.
// Exports use it so a round-tripped record stays byte-faithful to the service.
func (s *Statistics) RawJSON() []byte {
	out := make([]byte, len(s.raw))
	copy(out, s.raw)
	return out
}

// BreakdownByWireKey returns the breakdown decoded from the given wire key
// (see BreakdownSchema), or nil for an unknown key.
func (s *Statistics) BreakdownByWireKey(key string) *Breakdown {
	switch key {
	case "browser":
		return s.Browsers
	case "counter":
		return s.ClicksByDate
	case "country":
		return s.Countries
	case "os_name":
		return s.Platforms
	case "referrer":
		return s.Referrers
	case "unique_browser":
		return s.UniqueBrowsers
	case "unique_counter":
		return s.UniqueClicksByDate
	case "unique_country":
		return s.UniqueCountries
	case "unique_os_name":
		return s.UniquePlatforms
	case "unique_referrer":
		return s.UniqueReferrers
	default:
		return nil
	}
}

// NormalizeShortCode derives the short code from either a bare code or a full
// short URL: split on "/" and take the last segment. A trailing slash
// therefore yields an empty string; that edge case is intentional and the
// service will reject the empty code.
func NormalizeShortCode(shortCodeOrURL string) string {
	parts := strings.Split(shortCodeOrURL, "/")
	return parts[len(parts)-1]
}

// ParseStatistics decodes a 200-status stats response body into a Statistics
// record in one schema-validation pass. Invalid JSON yields a *DecodeError.
// Mandatory wire fields that are absent yield a *FieldMissingError naming the
// wire key; "creation-time" and "password" are optional and default to nil.
// The short code is not part of the translation and is filled in by the
// caller from the request identifier.
func ParseStatistics(body []byte) (*Statistics, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &DecodeError{Err: err}
	}

	d := decoder{fields: fields}
	s := &Statistics{raw: append([]byte(nil), body...)}

	s.LongURL = d.requireString("url")
	s.CreatedAt = d.requireString("creation-date")
	s.CreationTime = d.optionalString("creation-time")
	s.Password = d.optionalString("password")
	s.Expired = d.requireBool("expired")

	s.TotalClicks = d.requireInt("total-clicks")
	s.TotalUniqueClicks = d.requireInt("total_unique_clicks")
	s.MaxClicks = d.requireNullableInt("max-clicks")
	s.AverageDailyClicks = d.requireFloat("average_daily_clicks")
	s.AverageWeeklyClicks = d.requireFloat("average_weekly_clicks")
	s.AverageMonthlyClicks = d.requireFloat("average_monthly_clicks")

	s.LastClick = d.requireNullableString("last-click")
	s.LastClickBrowser = d.requireNullableString("last-click-browser")
	s.LastClickPlatform = d.requireNullableString("last-click-os")

	s.Browsers = d.requireBreakdown("browser")
	s.ClicksByDate = d.requireBreakdown("counter")
	s.Countries = d.requireBreakdown("country")
	s.Platforms = d.requireBreakdown("os_name")
	s.Referrers = d.requireBreakdown("referrer")
	s.UniqueBrowsers = d.requireBreakdown("unique_browser")
	s.UniqueClicksByDate = d.requireBreakdown("unique_counter")
	s.UniqueCountries = d.requireBreakdown("unique_country")
	s.UniquePlatforms = d.requireBreakdown("unique_os_name")
	s.UniqueReferrers = d.requireBreakdown("unique_referrer")

	if d.err != nil {
		return nil, d.err
	}
	return s, nil
}

// decoder extracts typed fields from a decoded JSON object, remembering the
// first error. Later lookups become no-ops once an error is set, so
// ParseStatistics reads as a flat field list.
type decoder struct {
	fields map[string]json.RawMessage
	err    error
}

func (d *decoder) lookup(key string) (json.RawMessage, bool) {
	if d.err != nil {
		return nil, false
	}
	raw, ok := d.fields[key]
	if !ok {
		d.err = &FieldMissingError{Field: key}
		return nil, false
	}
	return raw, true
}

func (d *decoder) unmarshal(key string, raw json.RawMessage, v any) {
	if err := json.Unmarshal(raw, v); err != nil {
		d.err = &DecodeError{Err: fmt.Errorf("field %q: %w", key, err)}
	}
}

func (d *decoder) requireString(key string) string {
	raw, ok := d.lookup(key)
	if !ok {
		return ""
	}
	var v string
	d.unmarshal(key, raw, &v)
	return v
}

func (d *decoder) requireBool(key string) bool {
	raw, ok := d.lookup(key)
	if !ok {
		return false
	}
	var v bool
	d.unmarshal(key, raw, &v)
	return v
}

func (d *decoder) requireInt(key string) int {
	raw, ok := d.lookup(key)
	if !ok {
		return 0
	}
	var v int
	d.unmarshal(key, raw, &v)
	return v
}

func (d *decoder) requireFloat(key string) float64 {
	raw, ok := d.lookup(key)
	if !ok {
		return 0
	}
	var v float64
	d.unmarshal(key, raw, &v)
	return v
}

// requireNullableString insists the key is present but accepts a null value.
func (d *decoder) requireNullableString(key string) *string {
	raw, ok := d.lookup(key)
	if !ok {
		return nil
	}
	var v *string
	d.unmarshal(key, raw, &v)
	return v
}

func (d *decoder) requireNullableInt(key string) *int {
	raw, ok := d.lookup(key)
	if !ok {
		return nil
	}
	var v *int
	d.unmarshal(key, raw, &v)
	return v
}

// optionalString treats both an absent key and a null value as nil.
func (d *decoder) optionalString(key string) *string {
	if d.err != nil {
		return nil
	}
	raw, ok := d.fields[key]
	if !ok {
		return nil
	}
	var v *string
	d.unmarshal(key, raw, &v)
	return v
}

func (d *decoder) requireBreakdown(key string) *Breakdown {
	raw, ok := d.lookup(key)
	if !ok {
		return nil
	}
	b := NewBreakdown()
	if err := b.UnmarshalJSON(raw); err != nil {
		d.err = &DecodeError{Err: err}
		return nil
	}
	return b
}
