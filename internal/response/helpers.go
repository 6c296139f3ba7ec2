package response

import "fmt"

// Text builds a 200 OK response carrying body.
func Text(body string) *Response {
	return New(StatusOK, body)
}

// Status builds a body-less response.
func Status(code StatusCode) *Response {
	return New(code, "")
}

// BadRequest is the response sent for requests that could not be decoded.
func BadRequest() *Response {
	return Status(StatusBadRequest)
}

func NotFound() *Response {
	return Status(StatusNotFound)
}

func InternalServerError() *Response {
	return Status(StatusInternalServerError)
}

// Errorf builds a response whose body is "Error <code>: <message>\n".
func Errorf(code StatusCode, format string, args ...any) *Response {
	message := fmt.Sprintf(format, args...)
	if message == "" {
		message = StatusText(code)
	}
	return New(code, fmt.Sprintf("Error %d: %s\n", code, message))
}
