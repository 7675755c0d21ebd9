package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodySize = 1024 * 1024 // 1MiB

// Request is the context of a single request passed to handlers.
type Request struct {
	r *http.Request
}

// NewRequest wraps an HTTP request.
func NewRequest(r *http.Request) *Request {
	return &Request{r: r}
}

// HTTPRequest returns the underlying HTTP request.
func (r *Request) HTTPRequest() *http.Request {
	return r.r
}

// Context returns the context of the underlying HTTP request.
func (r *Request) Context() context.Context {
	return r.r.Context()
}

// Method returns the HTTP method of the request.
func (r *Request) Method() string {
	return r.r.Method
}

// Path returns the URL path of the request.
func (r *Request) Path() string {
	return r.r.URL.Path
}

// PathValue returns the value of the named path wildcard of the route pattern
// the request was matched with, or an empty string.
func (r *Request) PathValue(name string) string {
	return r.r.PathValue(name)
}

// Header returns the first value of the named request header. The lookup is
// case-insensitive.
func (r *Request) Header(name string) string {
	return r.r.Header.Get(name)
}

// ParseJSON decodes the request body as a JSON object. It enforces a maximum
// body size limit to prevent resource exhaustion.
func (r *Request) ParseJSON() (map[string]any, error) {
	if r.r.Body == nil || r.r.Body == http.NoBody {
		return nil, errors.New("empty request body")
	}

	var payload map[string]any
	dec := json.NewDecoder(io.LimitReader(r.r.Body, maxBodySize))
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty request body")
		}
		return nil, fmt.Errorf("failed decoding request body as JSON: %w", err)
	}
	if payload == nil {
		return nil, errors.New("request body is not a JSON object")
	}

	return payload, nil
}
