package handler

// Handler processes a request and returns the response that should be written
// to the client. A non-nil error signals an unexpected failure, which is
// handled by the Router that dispatched the request.
type Handler func(*Request) (Response, error)

// Middleware wraps a Handler to provide additional behavior around it. It may
// decide not to call the wrapped Handler at all.
type Middleware func(Handler) Handler

// Register binds a composed Handler to a route. The method and path pattern of
// the route are already known to the function. See Router.Route.
type Register func(Handler)

// Compose wraps terminal with the given middlewares and registers the result
// using register.
//
// The first middleware is the outermost one: a request reaches mws[0] first,
// which calls the handler produced by wrapping mws[1:] around terminal, and so
// on, with the results returning back outwards. Any middleware can stop the
// request from reaching the remainder of the chain.
func Compose(register Register, terminal Handler, mws ...Middleware) {
	register(Chain(mws...)(terminal))
}

// Chain combines multiple middlewares into a single one, preserving the order
// in which they were specified.
func Chain(mws ...Middleware) Middleware {
	return func(next Handler) Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

// SetHeader returns a middleware that sets the header key to value on the
// response of the wrapped handler.
func SetHeader(key, value string) Middleware {
	return func(next Handler) Handler {
		return func(req *Request) (Response, error) {
			resp, err := next(req)
			if err == nil && resp != nil {
				resp.Header().Set(key, value)
			}
			return resp, err
		}
	}
}

// NoStore disables caching of responses by clients and intermediaries.
func NoStore() Middleware {
	return SetHeader("Cache-Control", "no-store")
}
