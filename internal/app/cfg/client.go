package cfg

import (
	"time"

	"lkv/internal"
	"lkv/internal/app/apps"
)

// DialTimeoutCfg is configuration for the client timeouts.
type DialTimeoutCfg struct {
	timeout time.Duration
}

// NewDialTimeoutCfg creates a new DialTimeoutCfg.
func NewDialTimeoutCfg(timeout time.Duration) *DialTimeoutCfg {
	return &DialTimeoutCfg{
		timeout: timeout,
	}
}

// DialTimeoutFromEnv creates a new DialTimeoutCfg from the current environment.
func DialTimeoutFromEnv() *DialTimeoutCfg {
	return NewDialTimeoutCfg(time.Duration(internal.ClientDialTimeoutMS) * time.Millisecond)
}

// ApplyClientApp applies the DialTimeoutCfg to a ClientApp.
func (cfg DialTimeoutCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.DialTimeout = cfg.timeout
	return nil
}
