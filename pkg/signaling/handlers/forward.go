package handlers

import (
	"log"

	"github.com/streamrelay/relay/pkg/manager"
	"github.com/streamrelay/relay/pkg/signaling/message"
	"github.com/streamrelay/relay/pkg/structs"
)

// relay delivers an event to a single peer. A target that is the sender, or
// that isn't connected, gets nothing. It returns the number of deliveries.
func relay(s *structs.Server, client structs.Conn, target string, event string, payload any) int {
	if target == client.PeerID() {
		return 0
	}
	peer := manager.GetPeer(s.Peers, target)
	if peer == nil {
		log.Printf("Relay %s from %s: peer %s is not connected", event, client.PeerID(), target)
		return 0
	}
	if err := message.Code(peer, event, payload, ""); err != nil {
		log.Printf("Relay %s from %s to %s error: %s", event, client.PeerID(), target, err.Error())
		return 0
	}
	return 1
}

// fanout delivers an event to every member of a room except the sender.
// It returns the number of deliveries.
func fanout(s *structs.Server, client structs.Conn, roomid string, event string, payload any) int {
	members := manager.WithoutPeer(manager.MembersOf(s.Rooms, roomid), client.PeerID())
	return message.Broadcast(
		manager.GetPeers(s.Peers, members),
		&structs.EventPacket{
			Event:   event,
			Payload: payload,
		},
	)
}
