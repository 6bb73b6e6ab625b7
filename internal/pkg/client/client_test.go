package client

import (
	"net"
	"testing"

	"lkv/internal/pkg/line"
	"lkv/internal/pkg/protocol"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exchange struct {
	expect string
	reply  string
	silent bool
}

// script runs a fake server on the other end of the client's connection.
func script(t *testing.T, c *Client, exchanges ...exchange) <-chan struct{} {
	t.Helper()
	srv, cli := net.Pipe()
	c.use(cli)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer srv.Close()
		r, w := line.NewReader(srv), line.NewWriter(srv)
		for _, ex := range exchanges {
			got, err := r.ReadLine()
			if !assert.NoError(t, err) || !assert.Equal(t, ex.expect, got) {
				return
			}
			if ex.silent {
				continue
			}
			if !assert.NoError(t, w.WriteLine(ex.reply)) {
				return
			}
		}
	}()
	return done
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(WithServerAddr("pipe"))
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresAddr(t *testing.T) {
	_, err := NewClient()
	require.Equal(t, ErrMissingServerAddr, err)

	c, err := NewClient(WithServerPort(7070))
	require.NoError(t, err)
	require.Equal(t, "localhost:7070", c.serverAddr)
}

func TestSendBeforeDial(t *testing.T) {
	c := newTestClient(t)
	_, err := c.Send("GET k")
	require.Equal(t, ErrNotDialed, err)
	require.NoError(t, c.Close())
}

func TestRun(t *testing.T) {
	c := newTestClient(t)
	done := script(t, c,
		exchange{expect: "CONNECT Ben", reply: protocol.ConnectOK},
		exchange{expect: "PUT daughter", silent: true},
		exchange{expect: "petra", reply: protocol.PutOK},
		exchange{expect: "GET daughter", reply: "petra"},
		exchange{expect: "DELETE daughter", reply: protocol.DeleteOK},
		exchange{expect: "GET daughter", reply: protocol.GetError},
		exchange{expect: "DELETE daughter", reply: protocol.DeleteError},
		exchange{expect: "DISCONNECT", reply: protocol.DisconnectOK},
	)

	require.NoError(t, c.Connect("Ben"))
	require.NoError(t, c.Put("daughter", "petra"))
	v, err := c.Get("daughter")
	require.NoError(t, err)
	require.Equal(t, "petra", v)
	require.NoError(t, c.Delete("daughter"))
	_, err = c.Get("daughter")
	require.True(t, errors.Is(err, ErrNotFound))
	require.True(t, errors.Is(c.Delete("daughter"), ErrNotFound))
	require.NoError(t, c.Disconnect())
	<-done
}

func TestConnectRejected(t *testing.T) {
	c := newTestClient(t)
	done := script(t, c, exchange{expect: "CONNECT Ben", reply: protocol.ConnectError})
	require.True(t, errors.Is(c.Connect("Ben"), ErrRejected))
	<-done
}

func TestUnexpectedResponses(t *testing.T) {
	c := newTestClient(t)
	done := script(t, c,
		exchange{expect: "CONNECT Ben", reply: "HELLO"},
		exchange{expect: "PUT k", silent: true},
		exchange{expect: "v", reply: "PUT: ERROR"},
		exchange{expect: "DISCONNECT", reply: "BYE"},
	)
	require.True(t, errors.Is(c.Connect("Ben"), ErrUnexpectedResponse))
	require.True(t, errors.Is(c.Put("k", "v"), ErrUnexpectedResponse))
	require.True(t, errors.Is(c.Disconnect(), ErrUnexpectedResponse))
	<-done
}

func TestServerClosed(t *testing.T) {
	c := newTestClient(t)
	done := script(t, c, exchange{expect: "CONNECT Ben", silent: true})
	require.Error(t, c.Connect("Ben"))
	<-done
}
