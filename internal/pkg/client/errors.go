package client

import "github.com/pkg/errors"

// ErrMissingServerAddr indicates that no server address was configured.
var ErrMissingServerAddr = errors.New("missing server address")

// ErrNotDialed indicates that a request was made before Dial.
var ErrNotDialed = errors.New("not dialed")

// ErrRejected indicates that the server refused the client id.
var ErrRejected = errors.New("client id rejected")

// ErrNotFound indicates that the key is not stored on the server.
var ErrNotFound = errors.New("key not found")

// ErrUnexpectedResponse indicates that the server answered with something the request does not allow.
var ErrUnexpectedResponse = errors.New("unexpected response")
