package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Brownie44l1/webserver/internal/response"
)

// ErrServerClosed is returned by Serve and ListenAndServe after Close,
// Shutdown or context cancellation.
var ErrServerClosed = errors.New("server: closed")

// Config configures the connection loop
type Config struct {
	Addr string

	// ReadTimeout bounds the single read of the request line.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration

	// MaxConnections caps how many connections are served at once.
	// 1 serves connections strictly one after another.
	MaxConnections int64

	ReadBufferSize int
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Addr:           "127.0.0.1:8080",
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		MaxConnections: 64,
		ReadBufferSize: DefaultReadBufferSize,
	}
}

type Server struct {
	Logger  Logger
	Metrics *Metrics

	config     Config
	handler    Handler
	middleware []Middleware
	buffers    *BufferPool
	sem        *semaphore.Weighted

	mu       sync.Mutex
	listener net.Listener
	closed   atomic.Bool
	conns    sync.WaitGroup
}

// New creates a server that dispatches decoded requests to handler.
func New(config Config, handler Handler) *Server {
	if config.MaxConnections <= 0 {
		config.MaxConnections = DefaultConfig().MaxConnections
	}
	if config.ReadBufferSize <= 0 {
		config.ReadBufferSize = DefaultReadBufferSize
	}

	return &Server{
		Logger:  NewDefaultLogger(),
		Metrics: NewMetrics(),
		config:  config,
		handler: handler,
		buffers: NewBufferPool(config.ReadBufferSize),
		sem:     semaphore.NewWeighted(config.MaxConnections),
	}
}

// Use appends middleware around the handler. It must be called before Serve.
func (s *Server) Use(middleware ...Middleware) {
	s.middleware = append(s.middleware, middleware...)
}

// Addr returns the bound address, or nil before the server is listening.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ListenAndServe binds the configured address and serves on it. A bind
// failure is returned immediately; the caller is expected to treat it as fatal.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.config.Addr, err)
	}
	s.Logger.Info("listening", Field{"addr", ln.Addr().String()})
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until the server is closed or ctx is done.
// A failed accept, read or write never stops the loop.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.listener = ln
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()

	c := &connHandler{
		server:  s,
		handler: Chain(s.handler, s.middleware...),
	}
	if brh, ok := s.handler.(BadRequestHandler); ok {
		c.badRequest = brh.HandleBadRequest
	} else {
		c.badRequest = func(err error) *response.Response {
			return DefaultBadRequest(s.Logger, err)
		}
	}

	var backoff time.Duration
	for {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return ErrServerClosed
		}

		conn, err := ln.Accept()
		if err != nil {
			s.sem.Release(1)
			if s.closed.Load() || errors.Is(err, net.ErrClosed) {
				return ErrServerClosed
			}

			s.Metrics.AcceptErrors.Add(1)
			backoff = nextBackoff(backoff)
			s.Logger.Error("accept failed",
				Field{"error", err},
				Field{"retry_in", backoff.String()},
			)
			time.Sleep(backoff)
			continue
		}
		backoff = 0

		// Add under mu so it can never follow Shutdown's Wait.
		s.mu.Lock()
		if s.closed.Load() {
			s.mu.Unlock()
			conn.Close()
			s.sem.Release(1)
			return ErrServerClosed
		}
		s.conns.Add(1)
		s.mu.Unlock()

		go func() {
			defer s.conns.Done()
			defer s.sem.Release(1)
			c.serve(conn)
		}()
	}
}

// nextBackoff grows the pause between failing accepts from 5ms up to 1s.
func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	d *= 2
	if d > time.Second {
		d = time.Second
	}
	return d
}

// Close stops accepting new connections. In-flight connections keep running.
func (s *Server) Close() error {
	s.closed.Store(true)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Shutdown closes the listener and waits for in-flight connections to finish
// or for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.Close()

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()

	select {
	case <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
