package handlers

import (
	"log"

	"github.com/streamrelay/relay/pkg/constants"
	"github.com/streamrelay/relay/pkg/manager"
	"github.com/streamrelay/relay/pkg/signaling/message"
	"github.com/streamrelay/relay/pkg/structs"
)

// JoinRoom handles the joinRoom event. The payload is the room id; the room
// is created if it doesn't exist. The sender gets {success, roomId} and every
// other member is told about the newcomer with userJoined. Joining a room the
// sender is already in leaves membership unchanged but still notifies.
func JoinRoom(s *structs.Server, client structs.Conn, packet *structs.SignalPacket) {
	roomid, err := decodeRoomID(s, packet)
	if err != nil {
		malformed(client, packet, err)
		return
	}

	if !manager.Join(s.Rooms, roomid, client.PeerID()) {
		log.Printf("Peer %s rejoined room %s", client.PeerID(), roomid)
	}

	err = message.Code(
		client,
		constants.EventJoinRoom,
		&structs.JoinRoomAck{Success: true, RoomID: roomid},
		packet.Listener,
	)
	if err != nil {
		log.Printf("Send joinRoom acknowledgment error: %s", err.Error())
	}

	notified := fanout(s, client, roomid, constants.EventUserJoined, &structs.UserParams{UserID: client.PeerID()})
	log.Printf("Peer %s joined room %s (%d members, %d notified)", client.PeerID(), roomid, len(s.Rooms.Rooms[roomid]), notified)
}
