package client

import "fmt"

// RequestError is any non-200 HTTP response from the service. Status and
// body are carried verbatim so the caller can diagnose without re-running
// with extra logging. It is never retried.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.StatusCode, e.Body)
}
