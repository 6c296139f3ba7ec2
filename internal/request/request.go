package request

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Brownie44l1/webserver/internal/querystring"
)

// Request is a decoded request line.
//
// The buffer handed to Decode is converted to a string once; Path and the
// query string are substrings of that string. A Request is only valid for the
// duration of the handler call that receives it and must not be modified.
type Request struct {
	path        string
	queryString *querystring.QueryString
	method      Method
}

// Path returns the request path without the query string.
func (r *Request) Path() string {
	return r.path
}

func (r *Request) Method() Method {
	return r.method
}

// QueryString returns the decoded query, or nil when the path had no '?'.
func (r *Request) QueryString() *querystring.QueryString {
	return r.queryString
}

func (r *Request) String() string {
	return fmt.Sprintf("%s %s", r.method, r.path)
}

// Decode parses the request line at the start of buf. Only the first line is
// consumed; headers and body are ignored. The returned error is always a
// ParseError.
func Decode(buf []byte) (*Request, error) {
	if !utf8.Valid(buf) {
		return nil, InvalidEncoding
	}
	text := string(buf)

	methodToken, path, protocol, err := parseRequestLine(text)
	if err != nil {
		return nil, err
	}

	if protocol != Protocol {
		return nil, InvalidProtocol
	}

	method, err := ParseMethod(methodToken)
	if err != nil {
		if errors.Is(err, ErrInvalidMethodName) {
			return nil, InvalidMethod
		}
		return nil, InvalidRequest
	}

	req := &Request{path: path, method: method}
	if i := strings.IndexByte(path, '?'); i != -1 {
		qs := querystring.Parse(path[i+1:])
		req.queryString = &qs
		req.path = path[:i]
	}

	return req, nil
}
