package handler

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// Response is a value returned by handlers which knows how to write itself to
// the client.
type Response interface {
	StatusCode() int
	// Header returns the header map that will be sent with the response.
	// Middlewares can use it to modify headers before the response is written.
	Header() http.Header
	Write(w http.ResponseWriter) error
}

type baseResponse struct {
	status int
	header http.Header
}

func (r *baseResponse) StatusCode() int {
	return r.status
}

func (r *baseResponse) Header() http.Header {
	if r.header == nil {
		r.header = make(http.Header)
	}
	return r.header
}

func (r *baseResponse) writeHeader(w http.ResponseWriter, contentType string, size int) {
	h := w.Header()
	for k, v := range r.header {
		h[k] = v
	}
	if contentType != "" && h.Get("Content-Type") == "" {
		h.Set("Content-Type", contentType)
	}
	if size >= 0 {
		h.Set("Content-Length", strconv.Itoa(size))
	}
	w.WriteHeader(r.status)
}

// TextResponse is a plain text response.
type TextResponse struct {
	baseResponse
	Body string
}

// Text returns a plain text response with the given status code.
func Text(status int, body string) *TextResponse {
	return &TextResponse{baseResponse: baseResponse{status: status}, Body: body}
}

// Write implements the Response interface.
func (r *TextResponse) Write(w http.ResponseWriter) error {
	r.writeHeader(w, "text/plain; charset=utf-8", len(r.Body))
	_, err := w.Write([]byte(r.Body))
	return err //nolint:wrapcheck // Wrapped by caller.
}

// JSONResponse is a response with a JSON encoded body.
type JSONResponse struct {
	baseResponse
	Value any
}

// JSON returns a response that encodes v as JSON, with the given status code.
func JSON(status int, v any) *JSONResponse {
	return &JSONResponse{baseResponse: baseResponse{status: status}, Value: v}
}

// Write implements the Response interface.
func (r *JSONResponse) Write(w http.ResponseWriter) error {
	data, err := json.Marshal(r.Value)
	if err != nil {
		return fmt.Errorf("failed marshalling response into JSON: %w", err)
	}

	r.writeHeader(w, "application/json", len(data))
	_, err = w.Write(data)
	return err //nolint:wrapcheck // Wrapped by caller.
}

// Result is the structured body of API responses.
type Result struct {
	Data map[string]any `json:"data"`
	Err  bool           `json:"err"`
	Msg  string         `json:"msg"`
}

// OKResult returns a successful Result response with status 200 OK.
func OKResult(data map[string]any) *JSONResponse {
	if data == nil {
		data = map[string]any{}
	}
	return JSON(http.StatusOK, Result{Data: data})
}

// ErrorResult returns a failed Result response with empty data.
func ErrorResult(status int, msg string) *JSONResponse {
	return JSON(status, Result{Data: map[string]any{}, Err: true, Msg: msg})
}

// FileResponse is a response with the contents of a file.
type FileResponse struct {
	baseResponse
	Name string
	Data []byte
}

// File reads the file at name from fsys, and returns a response with its
// contents and status 200 OK. The Content-Type is guessed from the file
// extension, or from the contents if the extension is unknown.
func File(fsys vfs.FileSystem, name string) (*FileResponse, error) {
	data, err := vfs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed reading file '%s': %w", name, err)
	}

	return &FileResponse{
		baseResponse: baseResponse{status: http.StatusOK},
		Name:         name,
		Data:         data,
	}, nil
}

// Write implements the Response interface.
func (r *FileResponse) Write(w http.ResponseWriter) error {
	ctype := mime.TypeByExtension(path.Ext(r.Name))
	if ctype == "" {
		ctype = http.DetectContentType(r.Data)
	}

	r.writeHeader(w, ctype, len(r.Data))
	_, err := w.Write(r.Data)
	return err //nolint:wrapcheck // Wrapped by caller.
}

// EmptyResponse is a response without a body.
type EmptyResponse struct {
	baseResponse
}

// Empty returns a response with the given status code and no body.
func Empty(status int) *EmptyResponse {
	return &EmptyResponse{baseResponse: baseResponse{status: status}}
}

// Write implements the Response interface.
func (r *EmptyResponse) Write(w http.ResponseWriter) error {
	r.writeHeader(w, "", 0)
	return nil
}
