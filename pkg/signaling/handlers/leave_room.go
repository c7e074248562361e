package handlers

import (
	"log"

	"github.com/streamrelay/relay/pkg/constants"
	"github.com/streamrelay/relay/pkg/manager"
	"github.com/streamrelay/relay/pkg/signaling/message"
	"github.com/streamrelay/relay/pkg/structs"
)

// LeaveRoom handles the leaveRoom event. Leaving a room the sender isn't in
// is not an error; the acknowledgment is the same either way.
func LeaveRoom(s *structs.Server, client structs.Conn, packet *structs.SignalPacket) {
	roomid, err := decodeRoomID(s, packet)
	if err != nil {
		malformed(client, packet, err)
		return
	}

	if manager.Leave(s.Rooms, roomid, client.PeerID()) {
		log.Printf("Peer %s left room %s", client.PeerID(), roomid)
	}

	err = message.Code(
		client,
		constants.EventLeaveRoom,
		&structs.LeaveRoomAck{Success: true},
		packet.Listener,
	)
	if err != nil {
		log.Printf("Send leaveRoom acknowledgment error: %s", err.Error())
	}
}
