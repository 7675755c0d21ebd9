package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	aerrors "go.hackfix.me/banyan/app/errors"
	"go.hackfix.me/banyan/web/server/handler"
)

// Client is a friendly interface over the Banyan HTTP API.
type Client struct {
	*http.Client
	address string
	logger  *slog.Logger
}

// New returns a new client for the Banyan server listening on address.
func New(address string, logger *slog.Logger) *Client {
	return &Client{
		Client: &http.Client{
			Timeout: time.Minute,
			// Reporting the target status code is more useful than following it.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		address: address,
		logger:  logger.With("component", "web-client"),
	}
}

// Hello greets the server. If name is empty, the greeting is sent with a GET
// request, otherwise name is posted as JSON.
func (c *Client) Hello(ctx context.Context, name string) (string, error) {
	return c.hello(ctx, "/api/hello", name)
}

// AuthHello is like Hello, but uses the endpoint that requires authentication.
func (c *Client) AuthHello(ctx context.Context, name string) (string, error) {
	return c.hello(ctx, "/api/auth/hello", name)
}

func (c *Client) hello(ctx context.Context, path, name string) (string, error) {
	method := http.MethodGet
	var body []byte
	if name != "" {
		method = http.MethodPost
		var err error
		body, err = json.Marshal(map[string]string{"name": name})
		if err != nil {
			return "", aerrors.NewWithCause("failed marshalling request data", err)
		}
	}

	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return "", err
	}

	if resp.status != http.StatusOK {
		return "", resp.fail()
	}

	return string(resp.body), nil
}

// Info returns the server information exposed at /api/info.
func (c *Client) Info(ctx context.Context) (map[string]any, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/info", nil)
	if err != nil {
		return nil, err
	}

	if resp.status != http.StatusOK {
		return nil, resp.fail()
	}

	var res handler.Result
	if err = json.Unmarshal(resp.body, &res); err != nil {
		return nil, aerrors.NewWithCause("failed unmarshalling response body", err, resp.errFields...)
	}

	return res.Data, nil
}

// Get requests path from the server, and returns the response status code and
// body. Unlike the other methods, responses with any status code are returned.
func (c *Client) Get(ctx context.Context, path string, header http.Header) (int, []byte, error) {
	resp, err := c.doWithHeader(ctx, http.MethodGet, path, nil, header)
	if err != nil {
		return 0, nil, err
	}
	return resp.status, resp.body, nil
}

type response struct {
	status    int
	body      []byte
	errFields []any
}

// fail returns an error with the server provided message, if any.
func (r *response) fail() error {
	fields := r.errFields
	var res handler.Result
	if err := json.Unmarshal(r.body, &res); err == nil && res.Msg != "" {
		fields = append(fields, "cause", res.Msg)
	}
	return aerrors.NewWith("request failed", fields...)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*response, error) {
	var header http.Header
	if body != nil {
		header = http.Header{"Content-Type": []string{"application/json"}}
	}
	return c.doWithHeader(ctx, method, path, body, header)
}

func (c *Client) doWithHeader(
	ctx context.Context, method, path string, body []byte, header http.Header,
) (_ *response, rerr error) {
	url := &url.URL{Scheme: "http", Host: c.address, Path: path}
	errFields := []any{"url", url.String(), "method", method}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url.String(), reqBody)
	if err != nil {
		return nil, aerrors.NewWithCause("failed creating request", err, errFields...)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	c.logger.Debug("sending request", "method", method, "url", url.String())
	resp, err := c.Do(req)
	if err != nil {
		return nil, aerrors.NewWithCause("failed sending request", err, errFields...)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("failed closing response body: %w", err)
		}
	}()
	errFields = append(errFields, "status_code", resp.StatusCode, "status", resp.Status)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, aerrors.NewWithCause("failed reading response body", err, errFields...)
	}

	return &response{status: resp.StatusCode, body: respBody, errFields: errFields}, nil
}
