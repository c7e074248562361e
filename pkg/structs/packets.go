package structs

import (
	"bytes"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/pion/webrtc/v4"
)

// Declare the packet format for signaling. Inbound payloads are kept raw so
// negotiation objects are forwarded exactly as the sender wrote them.
type SignalPacket struct {
	Event    string          `json:"event" validate:"required" label:"event"`
	Payload  json.RawMessage `json:"payload,omitempty" label:"payload"`
	Listener string          `json:"listener,omitempty" label:"listener"` // Echoed on the acknowledgment so clients can match replies
}

// Declare the packet format for everything the server writes.
type EventPacket struct {
	Event    string `json:"event"`
	Payload  any    `json:"payload,omitempty"`
	Listener string `json:"listener,omitempty"`
}

// Declare the packet format for the streamOffer event.
type StreamOfferParams struct {
	Offer  json.RawMessage `json:"offer" validate:"present" label:"offer"`
	RoomID string          `json:"roomId" validate:"required" label:"roomId"`
	To     string          `json:"to,omitempty" label:"to"` // Optional, broadcast to the room when empty
}

// Declare the packet format for the streamAnswer event.
type StreamAnswerParams struct {
	Answer json.RawMessage `json:"answer" validate:"present" label:"answer"`
	RoomID string          `json:"roomId" validate:"required" label:"roomId"`
	To     string          `json:"to" validate:"required" label:"to"`
}

// Declare the packet format for the iceCandidate event. A target equal to
// the room id floods the room.
type IceCandidateParams struct {
	Candidate json.RawMessage `json:"candidate" validate:"present" label:"candidate"`
	RoomID    string          `json:"roomId" validate:"required" label:"roomId"`
	To        string          `json:"to" validate:"required" label:"to"`
}

type JoinRoomAck struct {
	Success bool   `json:"success"`
	RoomID  string `json:"roomId"`
}

type LeaveRoomAck struct {
	Success bool `json:"success"`
}

// Declare the packet format for the userJoined and userDisconnected events.
type UserParams struct {
	UserID string `json:"userId"`
}

type ForwardedOffer struct {
	Offer json.RawMessage `json:"offer"`
	From  string          `json:"from"`
}

type ForwardedAnswer struct {
	Answer json.RawMessage `json:"answer"`
	From   string          `json:"from"`
}

type ForwardedCandidate struct {
	Candidate json.RawMessage `json:"candidate"`
	From      string          `json:"from"`
}

type RoomInfo struct {
	RoomID  string   `json:"roomId"`
	Exists  bool     `json:"exists"`
	Members []string `json:"members"`
}

type RoomSummary struct {
	RoomID  string `json:"roomId"`
	Members int    `json:"members"`
}

// IceServerConfig is the subset of RTCConfiguration advertised to clients.
type IceServerConfig struct {
	IceServers         []webrtc.ICEServer        `json:"iceServers"`
	IceTransportPolicy webrtc.ICETransportPolicy `json:"iceTransportPolicy"`
}

// IsMissing reports whether a raw payload field was absent or null.
func IsMissing(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// NewPacketValidator returns a validator that also understands the
// "present" tag used on raw payload fields.
func NewPacketValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("present", func(fl validator.FieldLevel) bool {
		raw, ok := fl.Field().Interface().(json.RawMessage)
		if !ok {
			return false
		}
		return !IsMissing(raw)
	})
	return v
}
