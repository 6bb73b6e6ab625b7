package protocol

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func connected(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine()
	_, err := m.Connect("CONNECT alice")
	require.NoError(t, err)
	return m
}

func TestConnect(t *testing.T) {
	tests := []struct {
		line string
		id   string
		err  bool
	}{
		{line: "CONNECT alice", id: "alice"},
		{line: "CONNECT alice\r", id: "alice"},
		{line: "CONNECT alice smith", id: "alice smith"},
		{line: "CONNECT  ", id: " "},
		{line: "CONNECT a", id: "a"},
		{line: "", err: true},
		{line: "CONNECT ", err: true},
		{line: "CONNECT \r", err: true},
		{line: "CONNECT", err: true},
		{line: "connect alice", err: true},
		{line: "CONNECTalice", err: true},
		{line: "HELLO alice", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			m := NewMachine()
			id, err := m.Connect(tt.line)
			if tt.err {
				require.True(t, errors.Is(err, ErrFormat))
				require.Equal(t, AwaitingConnect, m.State())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.id, id)
			require.Equal(t, Connected, m.State())
		})
	}
}

func TestConnectTwice(t *testing.T) {
	m := connected(t)
	_, err := m.Connect("CONNECT bob")
	require.True(t, errors.Is(err, ErrFormat))
	require.Equal(t, Connected, m.State())
}

func TestProcessInputBeforeConnect(t *testing.T) {
	m := NewMachine()
	_, _, err := m.ProcessInput("GET k")
	require.True(t, errors.Is(err, ErrFormat))
}

func TestPutGetDelete(t *testing.T) {
	m := connected(t)

	resp, ok, err := m.ProcessInput("PUT name")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, resp)
	require.Equal(t, AwaitingPutValue, m.State())

	resp, ok, err = m.ProcessInput("Bob  the builder ")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, PutOK, resp)
	require.Equal(t, Connected, m.State())

	resp, ok, err = m.ProcessInput("GET name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Bob  the builder ", resp)

	resp, _, err = m.ProcessInput("DELETE name")
	require.NoError(t, err)
	require.Equal(t, DeleteOK, resp)

	resp, _, err = m.ProcessInput("GET name")
	require.NoError(t, err)
	require.Equal(t, GetError, resp)

	resp, _, err = m.ProcessInput("DELETE name")
	require.NoError(t, err)
	require.Equal(t, DeleteError, resp)
}

func TestPutValueIsNotParsed(t *testing.T) {
	m := connected(t)
	_, _, err := m.ProcessInput("PUT cmd")
	require.NoError(t, err)
	resp, ok, err := m.ProcessInput("DISCONNECT")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, PutOK, resp)
	require.False(t, m.Disconnecting())

	resp, _, err = m.ProcessInput("GET cmd")
	require.NoError(t, err)
	require.Equal(t, "DISCONNECT", resp)
}

func TestKeysAreExact(t *testing.T) {
	m := connected(t)
	_, _, err := m.ProcessInput("PUT k\r")
	require.NoError(t, err)
	_, _, err = m.ProcessInput("v")
	require.NoError(t, err)

	resp, _, err := m.ProcessInput("GET k")
	require.NoError(t, err)
	require.Equal(t, GetError, resp)
	resp, _, err = m.ProcessInput("GET k\r")
	require.NoError(t, err)
	require.Equal(t, "v", resp)
}

func TestEmptyKey(t *testing.T) {
	m := connected(t)
	_, _, err := m.ProcessInput("PUT ")
	require.NoError(t, err)
	_, _, err = m.ProcessInput("")
	require.NoError(t, err)
	resp, _, err := m.ProcessInput("GET ")
	require.NoError(t, err)
	require.Equal(t, "", resp)
}

func TestUnmatched(t *testing.T) {
	m := connected(t)
	for _, line := range []string{"", "G", "get k", "GET", "DISCONNECT ", "DISCONNECTED", "PUTk", "CONNECT bob"} {
		resp, ok, err := m.ProcessInput(line)
		require.NoError(t, err, line)
		require.False(t, ok, line)
		require.Empty(t, resp, line)
		require.Equal(t, Connected, m.State(), line)
	}
}

func TestDisconnect(t *testing.T) {
	m := connected(t)
	_, _, err := m.ProcessInput("GET k")
	require.NoError(t, err)
	require.False(t, m.Disconnecting())

	resp, ok, err := m.ProcessInput("DISCONNECT")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, DisconnectOK, resp)
	require.True(t, m.Disconnecting())
	require.Equal(t, Disconnected, m.State())

	_, _, err = m.ProcessInput("GET k")
	require.True(t, errors.Is(err, ErrFormat))
	require.False(t, m.Disconnecting())
}

func TestStoresAreIndependent(t *testing.T) {
	a, b := connected(t), connected(t)
	_, _, err := a.ProcessInput("PUT k")
	require.NoError(t, err)
	_, _, err = a.ProcessInput("v")
	require.NoError(t, err)
	resp, _, err := b.ProcessInput("GET k")
	require.NoError(t, err)
	require.Equal(t, GetError, resp)
}
