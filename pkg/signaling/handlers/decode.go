package handlers

import (
	"errors"
	"log"

	"github.com/goccy/go-json"
	"github.com/streamrelay/relay/pkg/structs"
)

var errMissingPayload = errors.New("payload is required")

// decode unmarshals the packet payload into params and validates it.
func decode(s *structs.Server, packet *structs.SignalPacket, params any) error {
	if structs.IsMissing(packet.Payload) {
		return errMissingPayload
	}
	if err := json.Unmarshal(packet.Payload, params); err != nil {
		return err
	}
	return s.PacketValidator.Struct(params)
}

// decodeRoomID reads a payload that is a bare room id string.
func decodeRoomID(s *structs.Server, packet *structs.SignalPacket) (string, error) {
	if structs.IsMissing(packet.Payload) {
		return "", errMissingPayload
	}
	var roomid string
	if err := json.Unmarshal(packet.Payload, &roomid); err != nil {
		return "", err
	}
	if err := s.PacketValidator.Var(roomid, "required"); err != nil {
		return "", errors.New("room id is required")
	}
	return roomid, nil
}

// malformed logs a dropped event. Nothing is sent back.
func malformed(client structs.Conn, packet *structs.SignalPacket, err error) {
	log.Printf("Dropping malformed %s from peer %s: %s", packet.Event, client.PeerID(), err.Error())
}
