package cfg

import (
	"lkv/internal"
	"lkv/internal/app/apps"
)

// HealthPortCfg is configuration for the gRPC health service port.
type HealthPortCfg struct {
	port uint16
}

// NewHealthPortCfg creates a new HealthPortCfg. Port 0 disables the health service.
func NewHealthPortCfg(port uint16) *HealthPortCfg {
	return &HealthPortCfg{
		port: port,
	}
}

// HealthPortFromEnv creates a new HealthPortCfg from the current environment.
func HealthPortFromEnv() *HealthPortCfg {
	return NewHealthPortCfg(uint16(internal.HealthPort))
}

// ApplyServerApp applies the HealthPortCfg to a ServerApp.
func (cfg HealthPortCfg) ApplyServerApp(app *apps.ServerApp) error {
	app.HealthPort = cfg.port
	return nil
}

// MaxSessionsCfg caps the number of concurrent sessions of a server.
type MaxSessionsCfg struct {
	max int64
}

// NewMaxSessionsCfg creates a new MaxSessionsCfg. Zero means no cap.
func NewMaxSessionsCfg(max int64) *MaxSessionsCfg {
	return &MaxSessionsCfg{
		max: max,
	}
}

// MaxSessionsFromEnv creates a new MaxSessionsCfg from the current environment.
func MaxSessionsFromEnv() *MaxSessionsCfg {
	return NewMaxSessionsCfg(int64(internal.MaxGoroutines))
}

// ApplyServerApp applies the MaxSessionsCfg to a ServerApp.
func (cfg MaxSessionsCfg) ApplyServerApp(app *apps.ServerApp) error {
	app.MaxSessions = cfg.max
	return nil
}
