package constants

// Version is reported by the meta event and the health endpoint.
// Overridden at build time with -ldflags "-X github.com/streamrelay/relay/pkg/constants.Version=...".
var Version = "0.1.0"

// Inbound events.
const (
	EventKeepalive     = "keepalive"
	EventMeta          = "meta"
	EventJoinRoom      = "joinRoom"
	EventLeaveRoom     = "leaveRoom"
	EventStreamOffer   = "streamOffer"
	EventStreamAnswer  = "streamAnswer"
	EventIceCandidate  = "iceCandidate"
	EventGetIceServers = "getIceServers"
	EventListRooms     = "listRooms"
	EventRoomInfo      = "roomInfo"
)

// Server-pushed events.
const (
	EventUserJoined       = "userJoined"
	EventUserDisconnected = "userDisconnected"
)
