package message

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/streamrelay/relay/pkg/structs"
)

type bufferConn struct {
	id     string
	err    error
	frames [][]byte
}

func (c *bufferConn) PeerID() string { return c.id }

func (c *bufferConn) Deliver(frame []byte) error {
	if c.err != nil {
		return c.err
	}
	c.frames = append(c.frames, frame)
	return nil
}

func TestCodeEchoesListener(t *testing.T) {
	conn := &bufferConn{id: "A"}

	if err := Code(conn, "joinRoom", map[string]any{"success": true}, "42"); err != nil {
		t.Fatalf("code: %v", err)
	}
	if len(conn.frames) != 1 {
		t.Fatalf("frames = %d", len(conn.frames))
	}

	var packet structs.SignalPacket
	if err := json.Unmarshal(conn.frames[0], &packet); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if packet.Event != "joinRoom" || packet.Listener != "42" || string(packet.Payload) != `{"success":true}` {
		t.Fatalf("packet = %+v payload=%s", packet, packet.Payload)
	}
}

func TestCodeOmitsEmptyListener(t *testing.T) {
	conn := &bufferConn{id: "A"}
	Code(conn, "userJoined", &structs.UserParams{UserID: "B"}, "")

	if got := string(conn.frames[0]); got != `{"event":"userJoined","payload":{"userId":"B"}}` {
		t.Fatalf("frame = %s", got)
	}
}

func TestSendToNilConn(t *testing.T) {
	if err := Send(nil, "anything"); err != nil {
		t.Fatalf("send to nil: %v", err)
	}
}

func TestSendReturnsDeliveryError(t *testing.T) {
	conn := &bufferConn{id: "A", err: structs.ErrSendQueueFull}
	if err := Send(conn, "x"); !errors.Is(err, structs.ErrSendQueueFull) {
		t.Fatalf("err = %v", err)
	}
}

func TestBroadcastSkipsFailures(t *testing.T) {
	ok1 := &bufferConn{id: "A"}
	full := &bufferConn{id: "B", err: structs.ErrSendQueueFull}
	ok2 := &bufferConn{id: "C"}

	delivered := Broadcast([]structs.Conn{ok1, full, nil, ok2}, &structs.EventPacket{Event: "streamOffer"})
	if delivered != 2 {
		t.Fatalf("delivered = %d, want 2", delivered)
	}
	if string(ok1.frames[0]) != string(ok2.frames[0]) {
		t.Fatal("broadcast frames differ")
	}
}
