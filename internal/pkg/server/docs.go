// Package server implements the TCP listener of the key-value line protocol.
//
// The server performs the following steps:
// 	1. Binds a TCP listener on the configured address. A bind failure is returned to the caller.
// 	2. Accepts connections in a loop and runs each one in its own goroutine through a handler.Handler.
// 	3. Shares one registry.Registry between all sessions, so that a client id is held by at most
// 	   one connected session at a time.
// 	4. When the context is cancelled, closes the listener and every open connection, and waits
// 	   for the sessions to release their client ids.
//
// By default the number of concurrent sessions is unbounded. WithMaxSessions caps it; when the
// cap is reached the accept loop waits until a session ends.
//
// A session that fails never affects the listener or the other sessions.
package server
