package bittrex

import "fmt"

// TransportError the request did not produce an HTTP response.
type TransportError struct {
	Method Method
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport error: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError business error reported by the exchange in the response body.
// The exchange may report it with a 2xx status.
type APIError struct {
	StatusCode int
	Code       string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("bittrex api error %s (status %d): %s", e.Code, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("bittrex api error %s (status %d)", e.Code, e.StatusCode)
}
