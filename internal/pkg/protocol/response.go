package protocol

// Command prefixes, matched byte-exact.
const (
	ConnectPrefix = "CONNECT "
	PutPrefix     = "PUT "
	GetPrefix     = "GET "
	DeletePrefix  = "DELETE "
	Disconnect    = "DISCONNECT"
)

// Responses sent back to the client.
const (
	ConnectOK    = "CONNECT: OK"
	ConnectError = "CONNECT: ERROR"
	PutOK        = "PUT: OK"
	GetError     = "GET: ERROR"
	DeleteOK     = "DELETE: OK"
	DeleteError  = "DELETE: ERROR"
	DisconnectOK = "DISCONNECT: OK"
)
