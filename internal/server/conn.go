package server

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/Brownie44l1/webserver/internal/request"
	"github.com/Brownie44l1/webserver/internal/response"
)

// connHandler runs one connection through read, decode, handle and respond.
type connHandler struct {
	server     *Server
	handler    Handler
	badRequest func(err error) *response.Response
}

func (c *connHandler) serve(conn net.Conn) {
	defer conn.Close()

	s := c.server
	s.Metrics.connectionOpened()
	defer s.Metrics.connectionClosed()

	start := time.Now()
	log := withFields(s.Logger,
		Field{"conn_id", uuid.NewString()},
		Field{"remote", conn.RemoteAddr().String()},
	)

	buf := s.buffers.Get()
	defer s.buffers.Put(buf)

	if s.config.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout)); err != nil {
			log.Debug("set read deadline failed", Field{"error", err})
		}
	}

	// A single read: the request line is expected to arrive in one piece.
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		s.Metrics.ReadErrors.Add(1)
		log.Error("failed to read from connection", Field{"error", err})
		return
	}
	log.Debug("received request", Field{"bytes", n})

	resp := c.dispatch(buf[:n], log)

	if s.config.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout)); err != nil {
			log.Debug("set write deadline failed", Field{"error", err})
		}
	}

	written, err := resp.WriteTo(conn)
	if err != nil {
		s.Metrics.WriteErrors.Add(1)
		log.Error("failed to send response",
			Field{"status", int(resp.StatusCode())},
			Field{"bytes_written", written},
			Field{"error", err},
		)
		return
	}

	s.Metrics.RecordRequest(int(resp.StatusCode()), time.Since(start))
}

// dispatch decodes data and always produces a response, whatever the
// handler does.
func (c *connHandler) dispatch(data []byte, log Logger) (resp *response.Response) {
	defer func() {
		if r := recover(); r != nil {
			c.server.Metrics.Panics.Add(1)
			log.Error("handler panic", Field{"error", r})
			resp = response.InternalServerError()
		}
	}()

	req, err := request.Decode(data)
	if err != nil {
		c.server.Metrics.BadRequests.Add(1)
		resp = c.badRequest(err)
	} else {
		resp = c.handler.HandleRequest(req)
	}

	if resp == nil {
		log.Error("handler returned no response")
		return response.InternalServerError()
	}
	return resp
}
