package server

import (
	"runtime/debug"
	"time"

	"github.com/Brownie44l1/webserver/internal/request"
	"github.com/Brownie44l1/webserver/internal/response"
)

// LoggingMiddleware logs all requests
func LoggingMiddleware(logger Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(req *request.Request) *response.Response {
			start := time.Now()

			resp := next.HandleRequest(req)

			status := response.StatusInternalServerError
			if resp != nil {
				status = resp.StatusCode()
			}

			logger.Info("request handled",
				Field{"method", req.Method().String()},
				Field{"path", req.Path()},
				Field{"status", int(status)},
				Field{"duration_ms", time.Since(start).Milliseconds()},
			)
			return resp
		})
	}
}

// RecoveryMiddleware turns a panicking handler into a 500 response.
func RecoveryMiddleware(logger Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(req *request.Request) (resp *response.Response) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						Field{"error", err},
						Field{"stack", string(debug.Stack())},
						Field{"path", req.Path()},
					)
					resp = response.InternalServerError()
				}
			}()

			return next.HandleRequest(req)
		})
	}
}
