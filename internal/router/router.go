package router

import (
	"strings"

	"github.com/Brownie44l1/webserver/internal/request"
	"github.com/Brownie44l1/webserver/internal/response"
	"github.com/Brownie44l1/webserver/internal/server"
)

// Params holds values captured from ":name" segments and, under the key "*",
// the remainder matched by a trailing "/*".
type Params map[string]string

// HandleFunc handles a routed request.
type HandleFunc func(req *request.Request, params Params) *response.Response

// Route represents a single route
type Route struct {
	Method  request.Method
	Path    string
	Handler HandleFunc
}

// Router dispatches on method and path. Routes are tried in registration
// order and the first match wins.
type Router struct {
	routes   []*Route
	notFound server.Handler
}

// New creates a new router
func New() *Router {
	return &Router{
		routes: make([]*Route, 0),
	}
}

// Handle registers a new route
func (r *Router) Handle(method request.Method, path string, handler HandleFunc) {
	r.routes = append(r.routes, &Route{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
}

// GET is a shortcut for Handle(request.MethodGet, ...)
func (r *Router) GET(path string, handler HandleFunc) {
	r.Handle(request.MethodGet, path, handler)
}

// POST is a shortcut for Handle(request.MethodPost, ...)
func (r *Router) POST(path string, handler HandleFunc) {
	r.Handle(request.MethodPost, path, handler)
}

// PUT is a shortcut for Handle(request.MethodPut, ...)
func (r *Router) PUT(path string, handler HandleFunc) {
	r.Handle(request.MethodPut, path, handler)
}

// DELETE is a shortcut for Handle(request.MethodDelete, ...)
func (r *Router) DELETE(path string, handler HandleFunc) {
	r.Handle(request.MethodDelete, path, handler)
}

// PATCH is a shortcut for Handle(request.MethodPatch, ...)
func (r *Router) PATCH(path string, handler HandleFunc) {
	r.Handle(request.MethodPatch, path, handler)
}

// NotFound sets the handler used when no route matches.
// The default answers 404 with no body.
func (r *Router) NotFound(h server.Handler) {
	r.notFound = h
}

// Match finds a route that matches the given method and path
func (r *Router) Match(method request.Method, path string) (*Route, Params) {
	for _, route := range r.routes {
		if route.Method != method {
			continue
		}

		if params := matchPath(route.Path, path); params != nil {
			return route, params
		}
	}

	return nil, nil
}

// HandleRequest implements server.Handler.
func (r *Router) HandleRequest(req *request.Request) *response.Response {
	route, params := r.Match(req.Method(), req.Path())
	if route == nil {
		if r.notFound != nil {
			return r.notFound.HandleRequest(req)
		}
		return response.NotFound()
	}

	return route.Handler(req, params)
}

// matchPath checks if a request path matches a route pattern
// Returns parameter values if match, nil otherwise
func matchPath(pattern, path string) Params {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok && strings.HasSuffix(prefix, "/") {
		if !strings.HasPrefix(path, prefix) {
			return nil
		}
		return Params{"*": path[len(prefix):]}
	}

	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	// Must have same number of parts
	if len(patternParts) != len(pathParts) {
		return nil
	}

	params := make(Params)

	for i := 0; i < len(patternParts); i++ {
		patternPart := patternParts[i]
		pathPart := pathParts[i]

		if strings.HasPrefix(patternPart, ":") {
			params[patternPart[1:]] = pathPart
		} else if patternPart != pathPart {
			// Static parts must match exactly
			return nil
		}
	}

	return params
}
