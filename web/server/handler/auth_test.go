package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.hackfix.me/banyan/web/server/handler"
)

func TestAuthenticator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checker    handler.Checker
		expStatus  int
		expBody    string
		expCType   string
		expHandled int
	}{
		{
			name:       "ok/allow",
			checker:    handler.AllowAll,
			expStatus:  http.StatusOK,
			expBody:    "test",
			expCType:   "text/plain; charset=utf-8",
			expHandled: 1,
		},
		{
			name:       "ok/allow_func",
			checker:    handler.CheckFunc(func() bool { return true }),
			expStatus:  http.StatusOK,
			expBody:    "test",
			expCType:   "text/plain; charset=utf-8",
			expHandled: 1,
		},
		{
			name:       "err/deny",
			checker:    handler.DenyAll,
			expStatus:  http.StatusForbidden,
			expBody:    `{"data":{},"err":true,"msg":"not authenticated"}`,
			expCType:   "application/json",
			expHandled: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var handled int
			rt := newTestRouter()
			handler.Compose(rt.Route("/test"), func(*handler.Request) (handler.Response, error) {
				handled++
				return handler.Text(http.StatusOK, "test"), nil
			}, handler.Authenticator(tt.checker))

			rec := serve(t, rt, http.MethodGet, "/test", nil, "")
			assert.Equal(t, tt.expStatus, rec.Code)
			assert.Equal(t, tt.expCType, rec.Header().Get("Content-Type"))
			if tt.expStatus == http.StatusOK {
				assert.Equal(t, tt.expBody, rec.Body.String())
			} else {
				assert.JSONEq(t, tt.expBody, rec.Body.String())
			}
			assert.Equal(t, tt.expHandled, handled)
		})
	}
}

func TestAuthenticatorChecksOncePerRequest(t *testing.T) {
	t.Parallel()

	var checks int
	checker := handler.CheckFunc(func() bool {
		checks++
		return checks%2 == 1
	})

	rt := newTestRouter()
	handler.Compose(rt.Route("/test"), func(*handler.Request) (handler.Response, error) {
		return handler.Text(http.StatusOK, "test"), nil
	}, handler.Authenticator(checker))

	assert.Equal(t, http.StatusOK, serve(t, rt, http.MethodGet, "/test", nil, "").Code)
	assert.Equal(t, http.StatusForbidden, serve(t, rt, http.MethodGet, "/test", nil, "").Code)
	assert.Equal(t, http.StatusOK, serve(t, rt, http.MethodGet, "/test", nil, "").Code)
	assert.Equal(t, 3, checks)
}
