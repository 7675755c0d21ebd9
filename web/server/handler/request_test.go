package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/banyan/web/server/handler"
)

func TestRequestParseJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		exp    map[string]any
		expErr string
	}{
		{
			name: "ok/object",
			body: `{"name": "rj", "age": 3}`,
			exp:  map[string]any{"name": "rj", "age": float64(3)},
		},
		{
			name: "ok/empty_object",
			body: `{}`,
			exp:  map[string]any{},
		},
		{
			name:   "err/empty",
			body:   "",
			expErr: "empty request body",
		},
		{
			name:   "err/malformed",
			body:   `{"name": `,
			expErr: "failed decoding request body as JSON",
		},
		{
			name:   "err/array",
			body:   `["rj"]`,
			expErr: "failed decoding request body as JSON",
		},
		{
			name:   "err/null",
			body:   `null`,
			expErr: "request body is not a JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			payload, err := handler.NewRequest(r).ParseJSON()

			if tt.expErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expErr)
				assert.Nil(t, payload)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.exp, payload)
		})
	}
}

func TestRequestAccessors(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPut, "/files/a/b.txt?x=1", nil)
	r.Header.Set("content-type", "JSON")
	r.SetPathValue("path", "a/b.txt")

	req := handler.NewRequest(r)
	assert.Equal(t, http.MethodPut, req.Method())
	assert.Equal(t, "/files/a/b.txt", req.Path())
	assert.Equal(t, "a/b.txt", req.PathValue("path"))
	assert.Equal(t, "JSON", req.Header("Content-Type"))
	assert.Equal(t, "JSON", req.Header("CONTENT-TYPE"))
	assert.Same(t, r, req.HTTPRequest())
	assert.Equal(t, r.Context(), req.Context())
}
