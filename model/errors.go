package model

import "fmt"

// DecodeError reports a response body that is not valid JSON, or a field
// whose value has the wrong JSON type.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding statistics response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FieldMissingError reports a mandatory wire field absent from an otherwise
// valid statistics response. Its absence indicates a service or version
// mismatch the caller must know about, so it is never silently defaulted.
type FieldMissingError struct {
	Field string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("statistics response missing mandatory field %q", e.Field)
}

// MalformedDateError reports a clicks-by-date key that does not parse as a
// YYYY-MM-DD calendar date during windowed analysis.
type MalformedDateError struct {
	Value string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date key %q: want YYYY-MM-DD", e.Value)
}

// NoDataInWindowError reports a windowed analysis whose requested window
// contains no entries. It is distinct from the whole dataset being empty.
type NoDataInWindowError struct {
	Days int
}

func (e *NoDataInWindowError) Error() string {
	return fmt.Sprintf("no data available for the last %d days", e.Days)
}
