package client

import (
	"context"
	"fmt"
	"net"
	"time"

	"lkv/internal/pkg/line"
	"lkv/internal/pkg/protocol"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// DefaultDialTimeout is used when no dial timeout is configured.
const DefaultDialTimeout = 5 * time.Second

// Client is a connection to a key-value line protocol server.
type Client struct {
	serverAddr  string
	dialTimeout time.Duration
	timeout     time.Duration

	conn net.Conn
	r    *line.Reader
	w    *line.Writer
}

// Cfg configures a Client.
type Cfg func(*Client) error

// WithServerPort sets the server port to connect to on localhost.
func WithServerPort(p uint16) Cfg {
	return func(c *Client) error {
		c.serverAddr = fmt.Sprintf("localhost:%d", p)
		return nil
	}
}

// WithServerAddr sets the server address to connect to.
func WithServerAddr(addr string) Cfg {
	return func(c *Client) error {
		c.serverAddr = addr
		return nil
	}
}

// WithDialTimeout bounds how long Dial waits for the connection.
func WithDialTimeout(d time.Duration) Cfg {
	return func(c *Client) error {
		c.dialTimeout = d
		return nil
	}
}

// WithTimeout bounds every request. Zero means requests may block forever.
func WithTimeout(d time.Duration) Cfg {
	return func(c *Client) error {
		c.timeout = d
		return nil
	}
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfgs ...Cfg) (*Client, error) {
	client := &Client{
		dialTimeout: DefaultDialTimeout,
	}
	for _, cfg := range cfgs {
		if err := cfg(client); err != nil {
			return nil, errors.Wrap(err, "apply Client cfg failed")
		}
	}
	if client.serverAddr == "" {
		return nil, ErrMissingServerAddr
	}
	return client, nil
}

// Dial opens the connection to the server.
func (c *Client) Dial(ctx context.Context) error {
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return errors.Wrap(err, "close client connection failed")
		}
	}
	d := net.Dialer{Timeout: c.dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", c.serverAddr)
	if err != nil {
		return errors.Wrapf(err, "connect to %s failed", c.serverAddr)
	}
	c.use(conn)
	return nil
}

func (c *Client) use(conn net.Conn) {
	c.conn = conn
	c.r = line.NewReader(conn)
	c.w = line.NewWriter(conn)
}

// Close closes the connection without disconnecting first.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return errors.Wrap(err, "close client connection failed")
}

// SendNoResponse sends a line the server does not answer.
func (c *Client) SendNoResponse(s string) error {
	if c.conn == nil {
		return ErrNotDialed
	}
	if err := c.deadline(); err != nil {
		return err
	}
	logger.WithField("line", s).Debug("sent line")
	return errors.Wrap(c.w.WriteLine(s), "send failed")
}

// Send sends a line and returns the server's response.
func (c *Client) Send(s string) (string, error) {
	if err := c.SendNoResponse(s); err != nil {
		return "", err
	}
	resp, err := c.r.ReadLine()
	if err != nil {
		return "", errors.Wrap(err, "receive failed")
	}
	logger.WithField("line", resp).Debug("received line")
	return resp, nil
}

func (c *Client) deadline() error {
	if c.timeout == 0 {
		return nil
	}
	return errors.Wrap(c.conn.SetDeadline(time.Now().Add(c.timeout)), "set deadline failed")
}

// Connect performs the handshake as clientID.
func (c *Client) Connect(clientID string) error {
	resp, err := c.Send(protocol.ConnectPrefix + clientID)
	if err != nil {
		return errors.Wrap(err, "connect failed")
	}
	switch resp {
	case protocol.ConnectOK:
		return nil
	case protocol.ConnectError:
		return errors.Wrapf(ErrRejected, "client %q", clientID)
	}
	return errors.Wrapf(ErrUnexpectedResponse, "connect: %q", resp)
}

// Put stores value under key.
func (c *Client) Put(key, value string) error {
	if err := c.SendNoResponse(protocol.PutPrefix + key); err != nil {
		return errors.Wrap(err, "put key failed")
	}
	resp, err := c.Send(value)
	if err != nil {
		return errors.Wrap(err, "put value failed")
	}
	if resp != protocol.PutOK {
		return errors.Wrapf(ErrUnexpectedResponse, "put: %q", resp)
	}
	return nil
}

// Get returns the value stored under key.
func (c *Client) Get(key string) (string, error) {
	resp, err := c.Send(protocol.GetPrefix + key)
	if err != nil {
		return "", errors.Wrap(err, "get failed")
	}
	if resp == protocol.GetError {
		return "", errors.Wrapf(ErrNotFound, "get %q", key)
	}
	return resp, nil
}

// Delete removes key.
func (c *Client) Delete(key string) error {
	resp, err := c.Send(protocol.DeletePrefix + key)
	if err != nil {
		return errors.Wrap(err, "delete failed")
	}
	switch resp {
	case protocol.DeleteOK:
		return nil
	case protocol.DeleteError:
		return errors.Wrapf(ErrNotFound, "delete %q", key)
	}
	return errors.Wrapf(ErrUnexpectedResponse, "delete: %q", resp)
}

// Disconnect ends the session and closes the connection.
func (c *Client) Disconnect() error {
	resp, err := c.Send(protocol.Disconnect)
	if err != nil {
		return errors.Wrap(err, "disconnect failed")
	}
	if resp != protocol.DisconnectOK {
		return errors.Wrapf(ErrUnexpectedResponse, "disconnect: %q", resp)
	}
	return c.Close()
}
