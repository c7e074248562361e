package session

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/streamrelay/relay/pkg/constants"
	"github.com/streamrelay/relay/pkg/manager"
	"github.com/streamrelay/relay/pkg/signaling/message"
	"github.com/streamrelay/relay/pkg/structs"
)

// Time allowed to write a frame to the peer.
const writeWait = 10 * time.Second

// Open creates a client for a freshly upgraded websocket, assigns it a ULID,
// registers it as connected and starts its write pump. The peer joins no room
// until it asks to.
func Open(s *structs.Server, conn *websocket.Conn) *structs.Client {
	client := &structs.Client{
		Conn:   conn,
		ID:     ulid.Make().String(),
		Mux:    &sync.Mutex{},
		Outbox: make(chan []byte, s.SendQueueSize),
		Done:   make(chan struct{}),
	}

	s.Mux.Lock()
	client.Session = s.WebsocketConnCounter
	s.WebsocketConnCounter++
	s.Mux.Unlock()

	Connect(s, client)
	go pump(s, client)

	log.Printf("Created new session for peer %s (websocket ID %d)", client.ID, client.Session)
	return client
}

// Close runs the disconnect path for a websocket client, then stops its
// write pump and waits for it to exit. Safe to call more than once.
func Close(s *structs.Server, client *structs.Client) {
	if client == nil {
		log.Printf("Warning: Attempted to close nil client")
		return
	}

	Disconnect(s, client.ID)

	if client.Shutdown() {
		<-client.Done
		log.Printf("Closed session for peer %s (websocket ID %d)", client.ID, client.Session)
	}
}

// Connect makes a connection addressable by its peer id. It does not touch
// room membership.
func Connect(s *structs.Server, conn structs.Conn) {
	s.Mux.Lock()
	defer s.Mux.Unlock()
	if err := manager.AddPeer(s.Peers, conn); err != nil {
		log.Printf("Connect peer error: %s", err.Error())
	}
}

// Disconnect removes a peer from the directory and from every room it is in,
// deleting rooms that become empty. When the server has NotifyDisconnect
// set, the remaining members of each of those rooms get a userDisconnected
// event. A repeated call for the same peer finds nothing to remove and sends
// nothing. It returns the rooms the peer was removed from.
func Disconnect(s *structs.Server, peerid string) []string {
	s.Mux.Lock()
	defer s.Mux.Unlock()

	manager.RemovePeer(s.Peers, peerid)
	left := manager.LeaveAll(s.Rooms, peerid)
	if len(left) > 0 {
		log.Printf("Peer %s disconnected, removed from rooms %v", peerid, left)
	}

	if s.NotifyDisconnect {
		for _, roomid := range left {
			remaining := manager.GetPeers(s.Peers, manager.MembersOf(s.Rooms, roomid))
			message.Broadcast(
				remaining,
				&structs.EventPacket{
					Event:   constants.EventUserDisconnected,
					Payload: &structs.UserParams{UserID: peerid},
				},
			)
		}
	}

	return left
}

// pump writes queued frames to the websocket and keeps it alive with pings.
// It is the only writer on the connection. It exits when the outbox is
// closed or a write fails.
func pump(s *structs.Server, client *structs.Client) {
	ticker := time.NewTicker(s.PingInterval)
	defer func() {
		ticker.Stop()
		close(client.Done)
	}()

	for {
		select {
		case frame, ok := <-client.Outbox:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The session closed the outbox
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Printf("Write to peer %s error: %s", client.ID, err.Error())
				// Unblock the reader so the session closes
				client.Conn.Close()
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping peer %s error: %s", client.ID, err.Error())
				client.Conn.Close()
				return
			}
		}
	}
}
