package request

import "errors"

// Method is an HTTP request method.
type Method int

const (
	MethodGet Method = iota
	MethodDelete
	MethodPost
	MethodPut
	MethodHead
	MethodConnect
	MethodOptions
	MethodTrace
	MethodPatch
)

// ErrInvalidMethodName is returned by ParseMethod for anything that is not one
// of the nine known verbs.
var ErrInvalidMethodName = errors.New("invalid method name")

var methodNames = [...]string{
	MethodGet:     "GET",
	MethodDelete:  "DELETE",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodHead:    "HEAD",
	MethodConnect: "CONNECT",
	MethodOptions: "OPTIONS",
	MethodTrace:   "TRACE",
	MethodPatch:   "PATCH",
}

// Methods lists every supported method in declaration order.
func Methods() []Method {
	return []Method{
		MethodGet, MethodDelete, MethodPost, MethodPut, MethodHead,
		MethodConnect, MethodOptions, MethodTrace, MethodPatch,
	}
}

// ParseMethod matches s case-sensitively against the known verbs.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "GET":
		return MethodGet, nil
	case "DELETE":
		return MethodDelete, nil
	case "POST":
		return MethodPost, nil
	case "PUT":
		return MethodPut, nil
	case "HEAD":
		return MethodHead, nil
	case "CONNECT":
		return MethodConnect, nil
	case "OPTIONS":
		return MethodOptions, nil
	case "TRACE":
		return MethodTrace, nil
	case "PATCH":
		return MethodPatch, nil
	default:
		return 0, ErrInvalidMethodName
	}
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "UNKNOWN"
	}
	return methodNames[m]
}
