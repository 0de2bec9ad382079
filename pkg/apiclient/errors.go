package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError is a non-2xx reply whose body was JSON.
type RequestError struct {
	Method     string
	Path       string
	Status     int
	StatusText string
	// Detail is the server-supplied message, empty when none was sent.
	Detail   string
	Response *Response
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.StatusText)
}

// ParseError is a reply that could not be decoded as JSON in strict mode.
type ParseError struct {
	Status  int
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response (status %d): %v", e.Status, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RawResponseError is returned by typed operations when lenient mode passed
// a non-JSON body through: there is no data field to decode.
type RawResponseError struct {
	Raw *RawBody
}

func (e *RawResponseError) Error() string {
	return fmt.Sprintf("non-JSON response (status %d): %s", e.Raw.Status, e.Raw.Summary())
}

// EnvelopeError is a 2xx reply whose envelope code is not 0. RawCode holds
// the code as sent when it was not an integer.
type EnvelopeError struct {
	Code    int
	RawCode string
	Message string
}

func (e *EnvelopeError) Error() string {
	if e.RawCode != "" {
		return fmt.Sprintf("api error: malformed code %s", e.RawCode)
	}
	if e.Message != "" {
		return fmt.Sprintf("api error code %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api error code %d", e.Code)
}

// IsUnauthorized reports whether err carries a 401 or 403 status.
func IsUnauthorized(err error) bool {
	status := 0
	var reqErr *RequestError
	var parseErr *ParseError
	switch {
	case errors.As(err, &reqErr):
		status = reqErr.Status
	case errors.As(err, &parseErr):
		status = parseErr.Status
	}
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
