package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"syscall"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// IndexDocument is the file served for the root path, and for unknown paths
// requested by browser navigation.
const IndexDocument = "index.html"

// ServeStatic registers handlers on d that serve the files of a single-page
// application from the root directory of fsys. It registers the root path
// and a catch-all route for any sub-path, optionally restricted to methods.
//
// Requests are resolved in this order:
//  1. If the requested path is a regular file under root, its contents are
//     returned with status 200, regardless of the request method. The root
//     path resolves to the index document. Paths with a trailing slash, or
//     that can't name a file at all, are not files.
//  2. If it's a GET request, and the Content-Type header doesn't mention JSON,
//     the index document is returned with status 200, so that client-side
//     routing can handle the path.
//  3. Otherwise an empty 404 Not Found response is returned.
func ServeStatic(d Dispatcher, fsys vfs.FileSystem, root string, methods ...string) {
	s := &staticResolver{fs: fsys, root: root}

	Compose(d.Route("/{$}", methods...), s.handler(IndexDocument))
	Compose(d.Route("/{path...}", methods...), s.handler(""))
}

type staticResolver struct {
	fs   vfs.FileSystem
	root string
}

func (s *staticResolver) handler(defaultPath string) Handler {
	return func(req *Request) (Response, error) {
		name := req.PathValue("path")
		if name == "" {
			name = defaultPath
		}

		return s.resolve(req, name)
	}
}

func (s *staticResolver) resolve(req *Request, name string) (Response, error) {
	// A trailing slash names a directory, never a regular file.
	if !strings.HasSuffix(name, "/") {
		fpath := s.path(name)
		ok, err := s.isFile(fpath)
		if err != nil {
			return nil, err
		}
		if ok {
			return File(s.fs, fpath)
		}
	}

	if req.Method() != http.MethodGet || wantsJSON(req) {
		return Empty(http.StatusNotFound), nil
	}

	index := s.path(IndexDocument)
	if ok, err := s.isFile(index); err != nil {
		return nil, err
	} else if !ok {
		return Empty(http.StatusNotFound), nil
	}

	return File(s.fs, index)
}

// path returns the location of name inside the static root. The name is
// cleaned as a rooted path first, so the result never escapes the root.
func (s *staticResolver) path(name string) string {
	return vfs.Join(s.fs, s.root, strings.TrimPrefix(path.Clean("/"+name), "/"))
}

// isFile reports whether fpath is a regular file. Only permission and I/O
// failures are returned as errors. Any other stat error, such as a name that's
// too long or that contains a NUL byte, means there's no file at fpath.
func (s *staticResolver) isFile(fpath string) (bool, error) {
	fi, err := s.fs.Stat(fpath)
	switch {
	case err == nil:
		return fi.Mode().IsRegular(), nil
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EIO):
		return false, err //nolint:wrapcheck // Wrapped by the router.
	default:
		return false, nil
	}
}

// wantsJSON reports whether the request declares a JSON content type. Any
// value containing "json" is considered, irrespective of case, so compound
// values such as "application/json; charset=utf-8" also match.
func wantsJSON(req *Request) bool {
	return strings.Contains(strings.ToLower(req.Header("Content-Type")), "json")
}
