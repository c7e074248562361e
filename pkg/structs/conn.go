package structs

import "errors"

var (
	ErrSendQueueFull = errors.New("send queue full")
	ErrConnClosed    = errors.New("connection closed")
)

// Conn is a connected peer as seen by the relay: an opaque identifier
// assigned by the transport and a way to hand it an encoded frame.
// Deliver must not block.
type Conn interface {
	PeerID() string
	Deliver(frame []byte) error
}
