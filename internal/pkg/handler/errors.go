package handler

import "github.com/pkg/errors"

// ErrDuplicateClient is returned when the handshake names a client id held by another session.
var ErrDuplicateClient = errors.New("client id already connected")

// ErrMissingRegistry is returned by NewHandler when no registry is configured.
var ErrMissingRegistry = errors.New("missing client registry")
