package structs

import (
	"regexp"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pion/webrtc/v4"
)

// Server is the relay state shared by every connection. Mux serializes all
// access to Rooms and Peers: each inbound event and each disconnect runs as
// one unit of work while holding it.
type Server struct {
	AuthorizedOriginsStorage []*regexp.Regexp
	Mux                      *sync.Mutex
	Rooms                    *RoomStore
	Peers                    *PeerStore
	PacketValidator          *validator.Validate
	ICEConfig                webrtc.Configuration
	WebsocketPath            string
	NotifyDisconnect         bool
	StrictNegotiation        bool
	MaxMessageBytes          int64
	SendQueueSize            int
	PingInterval             time.Duration
	PongWait                 time.Duration
	WebsocketConnCounter     uint64
}

// RoomStore maps a room id to the set of peer ids currently in it.
// A room with no members is never kept.
type RoomStore struct {
	Rooms map[string]map[string]struct{}
}

// PeerStore maps a peer id to its live connection.
type PeerStore struct {
	Peers map[string]Conn
}
