package apps

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"lkv/internal"
	"lkv/internal/pkg/client"
	"lkv/internal/pkg/validate"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrCheckFailed is returned when the server answers the client check incorrectly.
var ErrCheckFailed = errors.New("client check failed")

// checkKey is the key the client check writes and removes.
const checkKey = "lkv-check"

// ClientAppCfg configures a ClientApp.
type ClientAppCfg interface {
	ApplyClientApp(*ClientApp) error
}

// ClientApp runs a scripted session against a server and reports whether it behaved.
type ClientApp struct {
	Host        string `validate:"required"`
	Port        uint16 `validate:"required"`
	ClientID    string
	DialTimeout time.Duration `validate:"min=0"`
}

// NewClientApp creates a new ClientApp.
func NewClientApp(cfgs ...ClientAppCfg) (*ClientApp, error) {
	app := &ClientApp{
		Host:        "localhost",
		DialTimeout: client.DefaultDialTimeout,
	}
	for _, cfg := range cfgs {
		if err := cfg.ApplyClientApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ClientApp cfg failed")
		}
	}
	if app.Port == 0 {
		app.Port = uint16(internal.Port)
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ClientApp failed")
	}
	return app, nil
}

// Run connects as args[0], or the configured client id, or a random one, and
// exercises every command once.
func (app *ClientApp) Run(ctx context.Context, args []string) error {
	clientID := app.ClientID
	if len(args) > 0 {
		clientID = args[0]
	}
	if clientID == "" {
		clientID = "lkv-" + uuid.NewString()
	}
	c, err := client.NewClient(
		client.WithServerAddr(net.JoinHostPort(app.Host, strconv.Itoa(int(app.Port)))),
		client.WithDialTimeout(app.DialTimeout),
		client.WithTimeout(app.DialTimeout),
	)
	if err != nil {
		return errors.Wrap(err, "create client failed")
	}
	if err := c.Dial(ctx); err != nil {
		return errors.Wrap(err, "dial failed")
	}
	defer c.Close()

	l := logger.WithFields(logrus.Fields{
		"client": clientID,
		"server": fmt.Sprintf("%s:%d", app.Host, app.Port),
	})
	if err := c.Connect(clientID); err != nil {
		return errors.Wrap(err, "connect failed")
	}
	l.Info("connected")

	if err := c.Put(checkKey, clientID); err != nil {
		return errors.Wrap(err, "put failed")
	}
	v, err := c.Get(checkKey)
	if err != nil {
		return errors.Wrap(err, "get failed")
	}
	if v != clientID {
		return errors.Wrapf(ErrCheckFailed, "get returned %q, want %q", v, clientID)
	}
	l.WithField("value", v).Info("put and get ok")

	if err := c.Delete(checkKey); err != nil {
		return errors.Wrap(err, "delete failed")
	}
	if _, err := c.Get(checkKey); !errors.Is(err, client.ErrNotFound) {
		return errors.Wrapf(ErrCheckFailed, "get after delete: %v", err)
	}
	l.Info("delete ok")

	if err := c.Disconnect(); err != nil {
		return errors.Wrap(err, "disconnect failed")
	}
	l.Info("client completed successfully")
	return nil
}
