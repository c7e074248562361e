package handlers

import (
	"log"

	"github.com/pion/webrtc/v4"
	"github.com/streamrelay/relay/pkg/constants"
	"github.com/streamrelay/relay/pkg/structs"
)

// StreamOffer handles the streamOffer event. With an explicit target the
// offer goes to that peer only; without one it goes to every other member of
// the room, which lets a broadcaster open sessions with everyone present.
func StreamOffer(s *structs.Server, client structs.Conn, packet *structs.SignalPacket) {
	params := &structs.StreamOfferParams{}
	if err := decode(s, packet, params); err != nil {
		malformed(client, packet, err)
		return
	}
	if s.StrictNegotiation {
		if err := checkDescription(params.Offer, webrtc.SDPTypeOffer); err != nil {
			malformed(client, packet, err)
			return
		}
	}

	forwarded := &structs.ForwardedOffer{Offer: params.Offer, From: client.PeerID()}
	if params.To != "" {
		relay(s, client, params.To, constants.EventStreamOffer, forwarded)
		return
	}

	count := fanout(s, client, params.RoomID, constants.EventStreamOffer, forwarded)
	log.Printf("Forwarded offer from %s to %d peers in room %s", client.PeerID(), count, params.RoomID)
}

// StreamAnswer handles the streamAnswer event. Answers always go to a
// single named peer.
func StreamAnswer(s *structs.Server, client structs.Conn, packet *structs.SignalPacket) {
	params := &structs.StreamAnswerParams{}
	if err := decode(s, packet, params); err != nil {
		malformed(client, packet, err)
		return
	}
	if s.StrictNegotiation {
		if err := checkDescription(params.Answer, webrtc.SDPTypeAnswer); err != nil {
			malformed(client, packet, err)
			return
		}
	}

	relay(s, client, params.To, constants.EventStreamAnswer, &structs.ForwardedAnswer{Answer: params.Answer, From: client.PeerID()})
}

// IceCandidate handles the iceCandidate event. A target equal to the room id
// floods the candidate to every other member of that room; any other target
// is a peer id.
func IceCandidate(s *structs.Server, client structs.Conn, packet *structs.SignalPacket) {
	params := &structs.IceCandidateParams{}
	if err := decode(s, packet, params); err != nil {
		malformed(client, packet, err)
		return
	}
	if s.StrictNegotiation {
		if err := checkCandidate(params.Candidate); err != nil {
			malformed(client, packet, err)
			return
		}
	}

	forwarded := &structs.ForwardedCandidate{Candidate: params.Candidate, From: client.PeerID()}
	if params.To == params.RoomID {
		fanout(s, client, params.RoomID, constants.EventIceCandidate, forwarded)
		return
	}
	relay(s, client, params.To, constants.EventIceCandidate, forwarded)
}
