package apps

import (
	"context"

	"lkv/internal"
	"lkv/internal/pkg/health"
	"lkv/internal/pkg/registry"
	"lkv/internal/pkg/server"
	"lkv/internal/pkg/validate"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ServerAppCfg configures a ServerApp.
type ServerAppCfg interface {
	ApplyServerApp(*ServerApp) error
}

// ServerApp is the key-value server application.
type ServerApp struct {
	Port        uint16 `validate:"required"`
	HealthPort  uint16
	MaxSessions int64 `validate:"min=0"`
}

// NewServerApp creates a new ServerApp.
func NewServerApp(cfgs ...ServerAppCfg) (*ServerApp, error) {
	app := &ServerApp{}
	for _, cfg := range cfgs {
		if err := cfg.ApplyServerApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ServerApp cfg failed")
		}
	}
	if app.Port == 0 {
		app.Port = uint16(internal.Port)
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ServerApp failed")
	}
	return app, nil
}

// Run serves clients until ctx is cancelled. A bind failure on either port ends the app.
func (app *ServerApp) Run(ctx context.Context, _ []string) error {
	cfgs := []server.Cfg{
		server.WithPort(app.Port),
		server.WithRegistry(registry.NewMemoryRegistry()),
		server.WithMaxSessions(app.MaxSessions),
	}
	g, ctx := errgroup.WithContext(ctx)
	if app.HealthPort != 0 {
		hs := health.NewServer(app.HealthPort)
		cfgs = append(cfgs, server.WithStatusReporter(hs))
		g.Go(func() error {
			return errors.Wrap(hs.ListenAndServe(ctx), "run health server failed")
		})
	}
	s, err := server.NewServer(cfgs...)
	if err != nil {
		return errors.Wrap(err, "create server failed")
	}
	g.Go(func() error {
		return errors.Wrap(s.ListenAndServe(ctx), "run server failed")
	})
	logger.WithField("port", app.Port).Info("server app started")
	return g.Wait()
}
