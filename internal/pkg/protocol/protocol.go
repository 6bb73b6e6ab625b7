// Package protocol implements the per-session state machine of the key-value line protocol.
//
// A session starts with a handshake:
//
//	CONNECT <client id>
//
// after which the client may send any number of commands:
//
//	PUT <key>      no response; the next line is stored as the value, answered with PUT: OK
//	GET <key>      the stored value, or GET: ERROR
//	DELETE <key>   DELETE: OK, or DELETE: ERROR if the key is absent
//	DISCONNECT     DISCONNECT: OK, after which the session is over
//
// Any other line gets no response and leaves the session open.
//
// Keys and values live in the Machine itself, so they are private to one session
// and do not survive a reconnect.
package protocol

import (
	"strings"

	"github.com/pkg/errors"
)

// Machine interprets the lines of one session. It is not safe for concurrent use.
type Machine struct {
	state         State
	store         map[string]string
	pendingKey    string
	disconnecting bool
}

// NewMachine creates a Machine awaiting the handshake.
func NewMachine() *Machine {
	return &Machine{
		state: AwaitingConnect,
		store: make(map[string]string),
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Disconnecting reports whether the last call to ProcessInput handled DISCONNECT.
func (m *Machine) Disconnecting() bool {
	return m.disconnecting
}

// Connect handles the handshake line and returns the client id it names.
// One trailing carriage return is ignored; the id may contain spaces.
func (m *Machine) Connect(line string) (string, error) {
	if m.state != AwaitingConnect {
		return "", errors.Wrapf(ErrFormat, "connect in state %s", m.state)
	}
	if line == "" {
		return "", errors.Wrap(ErrFormat, "empty handshake")
	}
	line = strings.TrimSuffix(line, "\r")
	if len(line) <= len(ConnectPrefix) {
		return "", errors.Wrap(ErrFormat, "handshake too short")
	}
	if !strings.HasPrefix(line, ConnectPrefix) {
		return "", errors.Wrap(ErrFormat, "handshake must start with CONNECT")
	}
	m.state = Connected
	return line[len(ConnectPrefix):], nil
}

// ProcessInput handles one line after the handshake. ok is false when the line
// gets no response.
func (m *Machine) ProcessInput(line string) (resp string, ok bool, err error) {
	m.disconnecting = false
	switch m.state {
	case AwaitingPutValue:
		return m.putValue(line)
	case Connected:
		return m.command(line)
	}
	return "", false, errors.Wrapf(ErrFormat, "input in state %s", m.state)
}

func (m *Machine) putValue(value string) (string, bool, error) {
	m.store[m.pendingKey] = value
	m.pendingKey = ""
	m.state = Connected
	return PutOK, true, nil
}

func (m *Machine) command(line string) (string, bool, error) {
	switch {
	case strings.HasPrefix(line, PutPrefix):
		m.pendingKey = line[len(PutPrefix):]
		m.state = AwaitingPutValue
		return "", false, nil
	case strings.HasPrefix(line, GetPrefix):
		if v, ok := m.store[line[len(GetPrefix):]]; ok {
			return v, true, nil
		}
		return GetError, true, nil
	case strings.HasPrefix(line, DeletePrefix):
		key := line[len(DeletePrefix):]
		if _, ok := m.store[key]; !ok {
			return DeleteError, true, nil
		}
		delete(m.store, key)
		return DeleteOK, true, nil
	case line == Disconnect:
		m.disconnecting = true
		m.state = Disconnected
		return DisconnectOK, true, nil
	}
	return "", false, nil
}
