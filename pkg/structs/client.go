package structs

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Client is a websocket-backed Conn. Frames handed to Deliver are queued
// on Outbox and written by the session's write pump.
type Client struct {
	Conn    *websocket.Conn
	ID      string
	Session uint64
	Mux     *sync.Mutex // guards Closed and sends on Outbox
	Outbox  chan []byte
	Done    chan struct{} // closed when the write pump exits
	Closed  bool
}

func (c *Client) PeerID() string {
	return c.ID
}

func (c *Client) Deliver(frame []byte) error {
	c.Mux.Lock()
	defer c.Mux.Unlock()
	if c.Closed {
		return ErrConnClosed
	}
	select {
	case c.Outbox <- frame:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Shutdown closes the outbox so the write pump drains and exits.
// It reports whether this call performed the close.
func (c *Client) Shutdown() bool {
	c.Mux.Lock()
	defer c.Mux.Unlock()
	if c.Closed {
		return false
	}
	c.Closed = true
	close(c.Outbox)
	return true
}
