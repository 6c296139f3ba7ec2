package response

// StatusCode represents HTTP status codes
type StatusCode int

const (
	// 2xx Success
	StatusOK        StatusCode = 200
	StatusCreated   StatusCode = 201
	StatusAccepted  StatusCode = 202
	StatusNoContent StatusCode = 204

	// 3xx Redirection
	StatusMovedPermanently StatusCode = 301
	StatusFound            StatusCode = 302
	StatusNotModified      StatusCode = 304

	// 4xx Client Error
	StatusBadRequest            StatusCode = 400
	StatusUnauthorized          StatusCode = 401
	StatusForbidden             StatusCode = 403
	StatusNotFound              StatusCode = 404
	StatusMethodNotAllowed      StatusCode = 405
	StatusRequestTimeout        StatusCode = 408
	StatusRequestEntityTooLarge StatusCode = 413
	StatusRequestURITooLong     StatusCode = 414
	StatusTeapot                StatusCode = 418 // RFC 2324
	StatusTooManyRequests       StatusCode = 429

	// 5xx Server Error
	StatusInternalServerError     StatusCode = 500
	StatusNotImplemented          StatusCode = 501
	StatusServiceUnavailable      StatusCode = 503
	StatusHTTPVersionNotSupported StatusCode = 505
)

// statusText maps status codes to reason phrases
var statusText = map[StatusCode]string{
	StatusOK:        "OK",
	StatusCreated:   "Created",
	StatusAccepted:  "Accepted",
	StatusNoContent: "No Content",

	StatusMovedPermanently: "Moved Permanently",
	StatusFound:            "Found",
	StatusNotModified:      "Not Modified",

	StatusBadRequest:            "Bad Request",
	StatusUnauthorized:          "Unauthorized",
	StatusForbidden:             "Forbidden",
	StatusNotFound:              "Not Found",
	StatusMethodNotAllowed:      "Method Not Allowed",
	StatusRequestTimeout:        "Request Timeout",
	StatusRequestEntityTooLarge: "Request Entity Too Large",
	StatusRequestURITooLong:     "Request URI Too Long",
	StatusTeapot:                "I'm a teapot",
	StatusTooManyRequests:       "Too Many Requests",

	StatusInternalServerError:     "Internal Server Error",
	StatusNotImplemented:          "Not Implemented",
	StatusServiceUnavailable:      "Service Unavailable",
	StatusHTTPVersionNotSupported: "HTTP Version Not Supported",
}

// StatusText returns the reason phrase for a status code
func StatusText(code StatusCode) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return "Unknown Status"
}

// ReasonPhrase is StatusText as a method.
func (code StatusCode) ReasonPhrase() string {
	return StatusText(code)
}

// IsSuccess returns true for 2xx status codes
func (code StatusCode) IsSuccess() bool {
	return code >= 200 && code < 300
}

// IsClientError returns true for 4xx status codes
func (code StatusCode) IsClientError() bool {
	return code >= 400 && code < 500
}

// IsServerError returns true for 5xx status codes
func (code StatusCode) IsServerError() bool {
	return code >= 500 && code < 600
}
