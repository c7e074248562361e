package handlers

import (
	"log"
	"runtime"

	"github.com/streamrelay/relay/pkg/constants"
	"github.com/streamrelay/relay/pkg/signaling/message"
	"github.com/streamrelay/relay/pkg/structs"
)

type MetadataPacket struct {
	OperatingSystem string `json:"os"`
	Architecture    string `json:"architecture"`
	ServerVersion   string `json:"version"`
	GoVersion       string `json:"go_version"`
	PeerID          string `json:"peer_id"`
}

// Meta replies with information about the server and the caller's own peer id.
func Meta(s *structs.Server, client structs.Conn, packet *structs.SignalPacket) {
	err := message.Code(
		client,
		constants.EventMeta,
		&MetadataPacket{
			OperatingSystem: runtime.GOOS,
			Architecture:    runtime.GOARCH,
			GoVersion:       runtime.Version(),
			ServerVersion:   constants.Version,
			PeerID:          client.PeerID(),
		},
		packet.Listener,
	)
	if err != nil {
		log.Printf("Send meta response error: %s", err.Error())
	}
}

func Keepalive(s *structs.Server, client structs.Conn, packet *structs.SignalPacket) {
	if err := message.Code(client, constants.EventKeepalive, packet.Payload, packet.Listener); err != nil {
		log.Printf("Send keepalive response error: %s", err.Error())
	}
}

// IceServers replies with the ICE configuration clients should hand to
// their RTCPeerConnection.
func IceServers(s *structs.Server, client structs.Conn, packet *structs.SignalPacket) {
	err := message.Code(
		client,
		constants.EventGetIceServers,
		&structs.IceServerConfig{
			IceServers:         s.ICEConfig.ICEServers,
			IceTransportPolicy: s.ICEConfig.ICETransportPolicy,
		},
		packet.Listener,
	)
	if err != nil {
		log.Printf("Send getIceServers response error: %s", err.Error())
	}
}
