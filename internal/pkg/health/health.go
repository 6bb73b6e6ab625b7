// Package health serves the standard gRPC health checking service next to the line protocol listener.
package health

import (
	"context"
	"fmt"
	"net"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// ServiceName is the service name reported next to the overall ("") status.
const ServiceName = "lkv"

// Server reports whether the line protocol listener is accepting connections.
type Server struct {
	port   uint16
	grpc   *grpc.Server
	health *grpchealth.Server
}

// NewServer creates a Server for the given port. It starts NOT_SERVING.
func NewServer(port uint16) *Server {
	h := grpchealth.NewServer()
	g := grpc.NewServer()
	healthpb.RegisterHealthServer(g, h)
	s := &Server{
		port:   port,
		grpc:   g,
		health: h,
	}
	s.SetServing(false)
	return s
}

// SetServing updates the reported status.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// ListenAndServe binds the health port and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return errors.Wrapf(err, "listen on health port %d failed", s.port)
	}
	return s.Serve(ctx, ln)
}

// Serve serves health checks on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		s.health.Shutdown()
		s.grpc.GracefulStop()
	})
	defer stop()
	logger.WithField("addr", ln.Addr().String()).Info("health server listening")
	if err := s.grpc.Serve(ln); err != nil {
		return errors.Wrap(err, "serve health failed")
	}
	return nil
}
