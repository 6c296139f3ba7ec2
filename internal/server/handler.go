package server

import (
	"github.com/Brownie44l1/webserver/internal/request"
	"github.com/Brownie44l1/webserver/internal/response"
)

// Handler maps a decoded request to a response. It is the only place where
// application logic runs.
//
// The request is a view that is only valid until HandleRequest returns.
// When the server runs with MaxConnections > 1, HandleRequest is called from
// several goroutines at once and implementations must do their own locking.
type Handler interface {
	HandleRequest(req *request.Request) *response.Response
}

// BadRequestHandler is implemented by handlers that want to answer undecodable
// requests themselves. Handlers that don't implement it get DefaultBadRequest.
type BadRequestHandler interface {
	HandleBadRequest(err error) *response.Response
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(req *request.Request) *response.Response

func (f HandlerFunc) HandleRequest(req *request.Request) *response.Response {
	return f(req)
}

// DefaultBadRequest logs err and returns 400 Bad Request with no body.
func DefaultBadRequest(logger Logger, err error) *response.Response {
	logger.Warn("failed to parse request", Field{"error", err})
	return response.BadRequest()
}

// Middleware wraps a Handler.
type Middleware func(next Handler) Handler

// Chain wraps h so that the first middleware is the outermost one.
func Chain(h Handler, middleware ...Middleware) Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
