package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/webserver/internal/querystring"
)

func TestMethodRoundTrip(t *testing.T) {
	for _, m := range Methods() {
		parsed, err := ParseMethod(m.String())
		require.NoError(t, err, "method %s should parse", m)
		assert.Equal(t, m, parsed)
		assert.Equal(t, m.String(), parsed.String())
	}
	assert.Len(t, Methods(), 9)
}

func TestParseMethodRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "get", "Get", "BOGUS", "GET ", " GET", "PROPFIND"} {
		_, err := ParseMethod(s)
		assert.ErrorIs(t, err, ErrInvalidMethodName, "input %q", s)
	}
}

func TestDecodeWithRepeatedQueryKey(t *testing.T) {
	req, err := Decode([]byte("GET /hello?a=1&a=2 HTTP/1.1\r\n\r\n"))

	require.NoError(t, err)
	assert.Equal(t, MethodGet, req.Method())
	assert.Equal(t, "/hello", req.Path())
	require.NotNil(t, req.QueryString())

	v, ok := req.QueryString().Get("a")
	require.True(t, ok)
	assert.Equal(t, querystring.Multiple{"1", "2"}, v)
}

func TestDecodeWithoutQuery(t *testing.T) {
	req, err := Decode([]byte("GET /no-query HTTP/1.1\r\n\r\n"))

	require.NoError(t, err)
	assert.Equal(t, "/no-query", req.Path())
	assert.Nil(t, req.QueryString())
	assert.Equal(t, "GET /no-query", req.String())
}

func TestDecodeSplitsOnFirstQuestionMark(t *testing.T) {
	req, err := Decode([]byte("POST /search?q=why?&x=1 HTTP/1.1\r\n"))

	require.NoError(t, err)
	assert.Equal(t, MethodPost, req.Method())
	assert.Equal(t, "/search", req.Path())
	assert.Equal(t, "why?", req.QueryString().First("q"))
	assert.Equal(t, "1", req.QueryString().First("x"))
}

func TestDecodeEmptyQuery(t *testing.T) {
	req, err := Decode([]byte("GET /path? HTTP/1.1\r\n"))

	require.NoError(t, err)
	assert.Equal(t, "/path", req.Path())
	require.NotNil(t, req.QueryString())
	assert.Equal(t, 0, req.QueryString().Len())
}

func TestDecodeIgnoresHeadersAndBody(t *testing.T) {
	data := "PUT /items/7 HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Content-Length: 5\r\n" +
		"\r\n" +
		"hello"

	req, err := Decode([]byte(data))

	require.NoError(t, err)
	assert.Equal(t, MethodPut, req.Method())
	assert.Equal(t, "/items/7", req.Path())
}

func TestDecodeAllMethods(t *testing.T) {
	for _, m := range Methods() {
		req, err := Decode([]byte(m.String() + " / HTTP/1.1\r\n\r\n"))
		require.NoError(t, err, "method %s should be valid", m)
		assert.Equal(t, m, req.Method())
	}
}

func TestDecodeUnsupportedProtocol(t *testing.T) {
	_, err := Decode([]byte("GET /x HTTP/1.0\r\n\r\n"))
	assert.ErrorIs(t, err, InvalidProtocol)

	_, err = Decode([]byte("GET /x HTTP/1.1x\r\n\r\n"))
	assert.ErrorIs(t, err, InvalidProtocol)
}

func TestDecodeInvalidMethod(t *testing.T) {
	_, err := Decode([]byte("BOGUS /x HTTP/1.1\r\n\r\n"))
	assert.ErrorIs(t, err, InvalidMethod)

	_, err = Decode([]byte("get /x HTTP/1.1\r\n\r\n"))
	assert.ErrorIs(t, err, InvalidMethod)
}

func TestDecodeProtocolCheckedBeforeMethod(t *testing.T) {
	_, err := Decode([]byte("BOGUS /x HTTP/2.0\r\n"))
	assert.ErrorIs(t, err, InvalidProtocol)
}

func TestDecodeMalformedRequestLine(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"GET",
		"GET /path",
		"GET /path HTTP/1.1",
		"GET /path\r\n",
	}

	for _, in := range inputs {
		req, err := Decode([]byte(in))
		assert.Nil(t, req, "input %q", in)
		assert.ErrorIs(t, err, InvalidRequest, "input %q", in)
	}
}

func TestDecodeInvalidEncoding(t *testing.T) {
	_, err := Decode([]byte("GET /\xff\xfe HTTP/1.1\r\n"))
	assert.ErrorIs(t, err, InvalidEncoding)
}

func TestDecodeZeroPaddedBuffer(t *testing.T) {
	buf := make([]byte, 1024)
	copy(buf, "DELETE /things/1 HTTP/1.1\r\n\r\n")

	req, err := Decode(buf)

	require.NoError(t, err)
	assert.Equal(t, MethodDelete, req.Method())
	assert.Equal(t, "/things/1", req.Path())
}

func TestParseErrorMessages(t *testing.T) {
	assert.Equal(t, "Invalid Request", InvalidRequest.Error())
	assert.Equal(t, "Invalid Encoding", InvalidEncoding.Error())
	assert.Equal(t, "Invalid Protocol", InvalidProtocol.Error())
	assert.Equal(t, "Invalid Method", InvalidMethod.Error())
}

func TestNextWord(t *testing.T) {
	word, rest, ok := nextWord("GET /x")
	require.True(t, ok)
	assert.Equal(t, "GET", word)
	assert.Equal(t, "/x", rest)

	word, rest, ok = nextWord("HTTP/1.1\r\nHost: a")
	require.True(t, ok)
	assert.Equal(t, "HTTP/1.1", word)
	assert.Equal(t, "\nHost: a", rest)

	_, _, ok = nextWord("nodelimiter")
	assert.False(t, ok)
}

func TestDecodeWhitespaceOnly(t *testing.T) {
	for _, in := range []string{"   ", "\r\r\r", " \r\n\r\n", "GET  HTTP/1.1\r\n"} {
		_, err := Decode([]byte(in))
		assert.ErrorIs(t, err, InvalidRequest, "input %q", in)
	}
}
