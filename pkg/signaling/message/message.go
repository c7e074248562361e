package message

import (
	"log"

	"github.com/goccy/go-json"
	"github.com/streamrelay/relay/pkg/structs"
)

// Send marshals the message and hands it to the connection.
func Send(conn structs.Conn, message any) error {
	if conn == nil {
		log.Printf("Got a nil connection when sending message: %v", message)
		return nil
	}

	// Marshal the message using go-json instead of interface/json
	bytes, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return conn.Deliver(bytes)
}

func Code(conn structs.Conn, event string, payload any, listener string) error {
	return Send(conn, &structs.EventPacket{Event: event, Payload: payload, Listener: listener})
}

// Broadcast marshals the message once and delivers it to every connection.
// Per-connection failures are logged and skipped. It returns the number of
// connections the frame was handed to.
func Broadcast(conns []structs.Conn, message any) int {
	bytes, err := json.Marshal(message)
	if err != nil {
		log.Printf("Marshal broadcast message error: %s", err.Error())
		return 0
	}
	delivered := 0
	for _, conn := range conns {
		if conn == nil {
			continue
		}
		if err := conn.Deliver(bytes); err != nil {
			log.Printf("Broadcast to peer %s error: %s", conn.PeerID(), err.Error())
			continue
		}
		delivered++
	}
	return delivered
}
