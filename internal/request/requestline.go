package request

// ParseError classifies why a raw buffer could not be decoded into a Request.
type ParseError int

const (
	InvalidRequest ParseError = iota
	InvalidEncoding
	InvalidProtocol
	InvalidMethod
)

// Protocol is the only version accepted on the request line.
const Protocol = "HTTP/1.1"

func (e ParseError) Message() string {
	switch e {
	case InvalidRequest:
		return "Invalid Request"
	case InvalidEncoding:
		return "Invalid Encoding"
	case InvalidProtocol:
		return "Invalid Protocol"
	case InvalidMethod:
		return "Invalid Method"
	default:
		return "Unknown Parse Error"
	}
}

func (e ParseError) Error() string {
	return e.Message()
}

// nextWord splits s at the first space or carriage return.
// The delimiter itself is dropped.
func nextWord(s string) (word, rest string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\r' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

// parseRequestLine pulls METHOD PATH PROTOCOL off the front of text.
// Anything after the protocol token is ignored. Empty method or path tokens
// (leading or doubled whitespace) make the line malformed.
func parseRequestLine(text string) (method, path, protocol string, err error) {
	method, rest, ok := nextWord(text)
	if !ok || method == "" {
		return "", "", "", InvalidRequest
	}
	path, rest, ok = nextWord(rest)
	if !ok || path == "" {
		return "", "", "", InvalidRequest
	}
	protocol, _, ok = nextWord(rest)
	if !ok {
		return "", "", "", InvalidRequest
	}
	return method, path, protocol, nil
}
