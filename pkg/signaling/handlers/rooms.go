package handlers

import (
	"log"

	"github.com/streamrelay/relay/pkg/constants"
	"github.com/streamrelay/relay/pkg/manager"
	"github.com/streamrelay/relay/pkg/signaling/message"
	"github.com/streamrelay/relay/pkg/structs"
)

func ListRooms(s *structs.Server, client structs.Conn, packet *structs.SignalPacket) {
	if err := message.Code(client, constants.EventListRooms, manager.Rooms(s.Rooms), packet.Listener); err != nil {
		log.Printf("Send listRooms response error: %s", err.Error())
	}
}

// RoomInfo replies with the members of the requested room. A room that
// doesn't exist is reported with exists=false and no members.
func RoomInfo(s *structs.Server, client structs.Conn, packet *structs.SignalPacket) {
	roomid, err := decodeRoomID(s, packet)
	if err != nil {
		malformed(client, packet, err)
		return
	}

	err = message.Code(
		client,
		constants.EventRoomInfo,
		&structs.RoomInfo{
			RoomID:  roomid,
			Exists:  manager.DoesRoomExist(s.Rooms, roomid),
			Members: manager.MembersOf(s.Rooms, roomid),
		},
		packet.Listener,
	)
	if err != nil {
		log.Printf("Send roomInfo response error: %s", err.Error())
	}
}
