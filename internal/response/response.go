package response

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrStatusWritten = errors.New("status line already written")
	ErrStatusMissing = errors.New("must write status line before ending the header section")
	ErrHeaderSection = errors.New("must end the header section before the body")
	ErrBodyWritten   = errors.New("body already written")
)

// writerState tracks what's been written so far
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer emits a response onto an io.Writer in wire order: status line,
// header terminator, body. No header fields are ever written.
type Writer struct {
	w       io.Writer
	state   writerState
	written int64
}

// NewWriter creates a new response writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		state: stateStart,
	}
}

// WriteStatusLine writes "HTTP/1.1 <code> <reason>\r\n".
func (w *Writer) WriteStatusLine(code StatusCode) error {
	if w.state != stateStart {
		return ErrStatusWritten
	}

	if err := w.write(fmt.Appendf(nil, "HTTP/1.1 %d %s\r\n", code, StatusText(code))); err != nil {
		return err
	}

	w.state = stateStatusWritten
	return nil
}

// EndHeaders writes the empty line that closes the (empty) header section.
func (w *Writer) EndHeaders() error {
	if w.state != stateStatusWritten {
		return ErrStatusMissing
	}

	if err := w.write([]byte("\r\n")); err != nil {
		return err
	}

	w.state = stateHeadersWritten
	return nil
}

// WriteBody writes the complete response body
func (w *Writer) WriteBody(data []byte) error {
	switch w.state {
	case stateHeadersWritten:
	case stateBodyWritten:
		return ErrBodyWritten
	default:
		return ErrHeaderSection
	}

	if len(data) > 0 {
		if err := w.write(data); err != nil {
			return err
		}
	}

	w.state = stateBodyWritten
	return nil
}

func (w *Writer) write(p []byte) error {
	n, err := w.w.Write(p)
	w.written += int64(n)
	return err
}

// BytesWritten reports how many bytes reached the underlying writer.
func (w *Writer) BytesWritten() int64 {
	return w.written
}

// Response is a status code and an optional body. It is immutable once built.
type Response struct {
	statusCode StatusCode
	body       string
}

// New builds a response. An empty body is sent as no body at all.
func New(code StatusCode, body string) *Response {
	return &Response{statusCode: code, body: body}
}

func (r *Response) StatusCode() StatusCode {
	return r.statusCode
}

func (r *Response) Body() string {
	return r.body
}

// Send writes "HTTP/1.1 <code> <reason>\r\n\r\n<body>" to w and returns the
// first write error, if any.
func (r *Response) Send(w io.Writer) error {
	_, err := r.WriteTo(w)
	return err
}

// WriteTo implements io.WriterTo.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	rw := NewWriter(w)

	if err := rw.WriteStatusLine(r.statusCode); err != nil {
		return rw.BytesWritten(), err
	}
	if err := rw.EndHeaders(); err != nil {
		return rw.BytesWritten(), err
	}
	if err := rw.WriteBody([]byte(r.body)); err != nil {
		return rw.BytesWritten(), err
	}
	return rw.BytesWritten(), nil
}
