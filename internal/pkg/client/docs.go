// Package client implements the client side of the key-value line protocol.
//
// The client performs the following steps:
//	1. Dial the server.
//	2. Send the CONNECT handshake with its client id and wait for CONNECT: OK.
//	   CONNECT: ERROR means another session already holds the id, reported as ErrRejected.
//	3. Issue PUT, GET and DELETE requests. A PUT is sent as two lines, the key and then the value,
//	   and only the value line is answered.
//	4. Send DISCONNECT, wait for DISCONNECT: OK and close the connection.
//
// Every request is a synchronous round trip, so a Client must not be shared between goroutines.
//
// The protocol has no escaping: a stored value equal to GET: ERROR cannot be told apart
// from a missing key, and Get reports ErrNotFound for both.
package client
