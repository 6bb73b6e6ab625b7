package protocol

// State is the position of a Machine in the session lifecycle.
type State uint8

// Machine states.
const (
	AwaitingConnect State = iota
	Connected
	AwaitingPutValue
	Disconnected
)

func (s State) String() string {
	switch s {
	case AwaitingConnect:
		return "AWAITING_CONNECT"
	case Connected:
		return "CONNECTED"
	case AwaitingPutValue:
		return "AWAITING_PUT_VALUE"
	case Disconnected:
		return "DISCONNECTED"
	}
	return "UNKNOWN"
}
