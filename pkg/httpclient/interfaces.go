package httpclient

import (
	"context"
	"io"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Status() string
	Header(key string) string
}

// Request describes a single outbound call. Body and Form are mutually
// exclusive; Form wins when both are set.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	Form    *Form
}

// Form is a multipart payload. The transport picks the boundary.
type Form struct {
	Fields map[string]string
	Files  []FormFile
}

// FormFile is one file part of a Form.
type FormFile struct {
	Field    string
	Filename string
	Reader   io.Reader
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req *Request) (Response, error)
}
