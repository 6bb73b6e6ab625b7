// Package handler runs a single client session over a connection.
//
// A session goes through the following steps:
//  1. The first line must be the CONNECT handshake. A connection that closes first,
//     or sends anything else, is closed without a response.
//  2. The client id is claimed in the registry. If another session holds it the client
//     receives CONNECT: ERROR and the connection is closed, otherwise CONNECT: OK.
//  3. Every following line is fed to the protocol machine and its response, if any,
//     is written back. The session ends after DISCONNECT: OK, when the peer closes
//     the connection, or on a read or write error.
//  4. The client id is released and the connection is closed.
package handler

import (
	"context"
	"io"
	"net"

	"lkv/internal/pkg/line"
	"lkv/internal/pkg/log"
	"lkv/internal/pkg/protocol"
	"lkv/internal/pkg/registry"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// Handler serves client sessions against a shared registry.
type Handler struct {
	registry registry.Registry
	logger   logrus.FieldLogger
}

// HandlerCfg configures a Handler.
type HandlerCfg func(*Handler) error

// WithRegistry sets the client registry.
func WithRegistry(r registry.Registry) HandlerCfg {
	return func(h *Handler) error {
		h.registry = r
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) HandlerCfg {
	return func(h *Handler) error {
		h.logger = l
		return nil
	}
}

// NewHandler creates a new Handler.
func NewHandler(cfgs ...HandlerCfg) (*Handler, error) {
	h := &Handler{
		logger: logger,
	}
	for _, cfg := range cfgs {
		if err := cfg(h); err != nil {
			return nil, errors.Wrap(err, "apply handler cfg failed")
		}
	}
	if h.registry == nil {
		return nil, ErrMissingRegistry
	}
	return h, nil
}

// Serve runs one session on conn and closes conn before returning.
// Cancelling ctx closes the connection, which ends the session.
// A session that ends because the peer closed the connection or disconnected returns nil.
func (h *Handler) Serve(ctx context.Context, conn net.Conn) error {
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()
	defer conn.Close()

	l := h.logger.WithFields(log.SessionFields(uuid.New(), conn.RemoteAddr()))
	r := line.NewReader(conn)
	w := line.NewWriter(conn)
	m := protocol.NewMachine()

	handshake, err := r.ReadLine()
	if err == io.EOF {
		l.Debug("connection closed before handshake")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "read handshake failed")
	}
	clientID, err := m.Connect(handshake)
	if err != nil {
		return errors.Wrap(err, "handshake failed")
	}
	l = l.WithField("client", clientID)

	if !h.registry.TryRegister(clientID) {
		l.Info("rejecting duplicate client")
		if err := w.WriteLine(protocol.ConnectError); err != nil {
			return errors.Wrap(err, "write connect error failed")
		}
		return errors.Wrapf(ErrDuplicateClient, "client %q", clientID)
	}
	defer func() {
		h.registry.Unregister(clientID)
		l.Info("client released")
	}()
	if err := w.WriteLine(protocol.ConnectOK); err != nil {
		return errors.Wrap(err, "write connect ok failed")
	}
	l.Info("client connected")

	for {
		in, err := r.ReadLine()
		if err == io.EOF {
			l.Info("connection closed by client")
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read line failed")
		}
		resp, ok, err := m.ProcessInput(in)
		if err != nil {
			return errors.Wrap(err, "process input failed")
		}
		l.WithFields(logrus.Fields{
			"state":    m.State().String(),
			"response": ok,
		}).Debug("processed line")
		if ok {
			if err := w.WriteLine(resp); err != nil {
				return errors.Wrap(err, "write response failed")
			}
		}
		if m.Disconnecting() {
			l.Info("client disconnected")
			return nil
		}
	}
}
