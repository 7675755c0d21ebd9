package api

import (
	"errors"
	"fmt"
	"net/http"

	"go.hackfix.me/banyan/web/server/handler"
)

// Hello says hello.
//
// A GET request is answered with "hello". A POST request must send a JSON
// object with a "name" field, and is answered with "hello <name>". Malformed
// payloads are answered with a Result error and status 500.
func Hello() handler.Handler {
	return func(req *handler.Request) (handler.Response, error) {
		if req.Method() != http.MethodPost {
			return handler.Text(http.StatusOK, "hello"), nil
		}

		payload, err := req.ParseJSON()
		if err != nil {
			return helloError(err), nil
		}

		name, ok := payload["name"]
		if !ok {
			return helloError(errors.New("missing field 'name'")), nil
		}

		return handler.Text(http.StatusOK, fmt.Sprintf("hello %v", name)), nil
	}
}

func helloError(err error) handler.Response {
	return handler.ErrorResult(http.StatusInternalServerError,
		fmt.Sprintf("Failed to say hello: %s", err))
}
