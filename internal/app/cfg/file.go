package cfg

import (
	"strings"
	"time"

	"lkv/internal/app/apps"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// FileCfg is configuration read from a TOML file. Zero values leave the app unchanged.
//
//	[server]
//	port = 7000
//	health_port = 7001
//	max_sessions = 10
//
//	[client]
//	host = "localhost"
//	port = 7000
//	client_id = "alice"
//	dial_timeout = "5s"
type FileCfg struct {
	Server ServerFileCfg `toml:"server"`
	Client ClientFileCfg `toml:"client"`
}

// ServerFileCfg is the [server] table.
type ServerFileCfg struct {
	Port        uint16 `toml:"port"`
	HealthPort  uint16 `toml:"health_port"`
	MaxSessions int64  `toml:"max_sessions"`
}

// ClientFileCfg is the [client] table.
type ClientFileCfg struct {
	Host        string        `toml:"host"`
	Port        uint16        `toml:"port"`
	ClientID    string        `toml:"client_id"`
	DialTimeout time.Duration `toml:"dial_timeout"`
}

// LoadFile reads a FileCfg from path. Unknown keys are an error.
func LoadFile(path string) (*FileCfg, error) {
	var cfg FileCfg
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "decode config file %s failed", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// ApplyServerApp applies the [server] table to a ServerApp.
func (cfg FileCfg) ApplyServerApp(app *apps.ServerApp) error {
	if cfg.Server.Port != 0 {
		app.Port = cfg.Server.Port
	}
	if cfg.Server.HealthPort != 0 {
		app.HealthPort = cfg.Server.HealthPort
	}
	if cfg.Server.MaxSessions != 0 {
		app.MaxSessions = cfg.Server.MaxSessions
	}
	return nil
}

// ApplyClientApp applies the [client] table to a ClientApp.
func (cfg FileCfg) ApplyClientApp(app *apps.ClientApp) error {
	if cfg.Client.Host != "" {
		app.Host = cfg.Client.Host
	}
	if cfg.Client.Port != 0 {
		app.Port = cfg.Client.Port
	}
	if cfg.Client.ClientID != "" {
		app.ClientID = cfg.Client.ClientID
	}
	if cfg.Client.DialTimeout != 0 {
		app.DialTimeout = cfg.Client.DialTimeout
	}
	return nil
}
