package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"lkv/internal/pkg/handler"
	"lkv/internal/pkg/registry"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

const maxAcceptDelay = time.Second

// StatusReporter is told whether the server is accepting connections.
type StatusReporter interface {
	SetServing(serving bool)
}

// Server accepts client connections and runs a session for each of them.
type Server struct {
	addr        string
	registry    registry.Registry
	maxSessions int64
	logger      logrus.FieldLogger
	status      StatusReporter
	handler     *handler.Handler
}

// Cfg configures a Server.
type Cfg func(*Server) error

// WithAddr sets the address to listen on.
func WithAddr(addr string) Cfg {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithPort listens on the given port on all interfaces.
func WithPort(p uint16) Cfg {
	return func(s *Server) error {
		s.addr = fmt.Sprintf(":%d", p)
		return nil
	}
}

// WithRegistry sets the client registry shared by all sessions.
func WithRegistry(r registry.Registry) Cfg {
	return func(s *Server) error {
		s.registry = r
		return nil
	}
}

// WithMaxSessions caps the number of concurrent sessions. Zero means no cap.
func WithMaxSessions(n int64) Cfg {
	return func(s *Server) error {
		if n < 0 {
			return ErrInvalidMaxSessions
		}
		s.maxSessions = n
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Cfg {
	return func(s *Server) error {
		s.logger = l
		return nil
	}
}

// WithStatusReporter sets a reporter that follows the accept loop.
func WithStatusReporter(r StatusReporter) Cfg {
	return func(s *Server) error {
		s.status = r
		return nil
	}
}

// NewServer creates a new Server with the given configuration.
func NewServer(cfgs ...Cfg) (*Server, error) {
	s := &Server{
		logger: logger,
	}
	for _, cfg := range cfgs {
		if err := cfg(s); err != nil {
			return nil, errors.Wrap(err, "apply Server cfg failed")
		}
	}
	if s.registry == nil {
		s.registry = registry.NewMemoryRegistry()
	}
	h, err := handler.NewHandler(
		handler.WithRegistry(s.registry),
		handler.WithLogger(s.logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "new handler failed")
	}
	s.handler = h
	return s, nil
}

// ListenAndServe binds the configured address and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s failed", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then waits for all
// sessions to end. Serve always closes ln. It returns nil after a cancellation
// and an error if accepting fails for any other reason.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()
	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})
	defer stop()
	defer ln.Close()

	var sem *semaphore.Weighted
	if s.maxSessions > 0 {
		sem = semaphore.NewWeighted(s.maxSessions)
	}

	s.setServing(true)
	defer s.setServing(false)
	s.logger.WithFields(logrus.Fields{
		"addr":         ln.Addr().String(),
		"max_sessions": s.maxSessions,
	}).Info("server listening")

	var delay time.Duration
	for {
		if sem != nil {
			if err := sem.Acquire(ctx, 1); err != nil {
				return nil
			}
		}
		conn, err := ln.Accept()
		if err != nil {
			if sem != nil {
				sem.Release(1)
			}
			if ctx.Err() != nil {
				s.logger.Info("server stopped")
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Temporary() { // nolint: staticcheck // same policy as net/http
				delay = backoff(delay)
				s.logger.WithError(err).WithField("retry_in", delay).Warn("accept failed")
				time.Sleep(delay)
				continue
			}
			return errors.Wrap(err, "accept failed")
		}
		delay = 0
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sem != nil {
				defer sem.Release(1)
			}
			s.serveConn(ctx, conn)
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	err := s.handler.Serve(ctx, conn)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		s.logger.WithError(err).Debug("session closed by shutdown")
	case errors.Is(err, handler.ErrDuplicateClient):
		s.logger.WithError(err).Info("session rejected")
	default:
		s.logger.WithError(err).Warn("session ended with error")
	}
}

func (s *Server) setServing(serving bool) {
	if s.status != nil {
		s.status.SetServing(serving)
	}
}

func backoff(delay time.Duration) time.Duration {
	if delay == 0 {
		return 5 * time.Millisecond
	}
	delay *= 2
	if delay > maxAcceptDelay {
		return maxAcceptDelay
	}
	return delay
}
