package signaling

import (
	"log"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/streamrelay/relay/pkg/config"
	"github.com/streamrelay/relay/pkg/constants"
	"github.com/streamrelay/relay/pkg/manager"
	"github.com/streamrelay/relay/pkg/signaling/handlers"
	"github.com/streamrelay/relay/pkg/signaling/origin"
	"github.com/streamrelay/relay/pkg/signaling/session"
	"github.com/streamrelay/relay/pkg/structs"
	"github.com/valyala/fasthttp"
)

type Server structs.Server

// Initialize builds an independent relay with its own empty registry.
func Initialize(cfg *config.Config) *Server {
	s := &Server{
		AuthorizedOriginsStorage: origin.CompilePatterns(cfg.AllowedOrigins),
		Mux:                      &sync.Mutex{},
		Rooms:                    manager.NewRoomStore(),
		Peers:                    manager.NewPeerStore(),
		PacketValidator:          structs.NewPacketValidator(),
		ICEConfig:                cfg.ICEConfiguration(),
		WebsocketPath:            cfg.WebsocketPath,
		NotifyDisconnect:         cfg.NotifyDisconnect,
		StrictNegotiation:        cfg.StrictNegotiation,
		MaxMessageBytes:          int64(cfg.MaxMessageBytes),
		SendQueueSize:            cfg.SendQueueSize,
		PingInterval:             cfg.PingInterval,
		PongWait:                 cfg.PongWait,
	}

	if cfg.NotifyDisconnect {
		log.Print("Disconnect notifications enabled. Remaining room members will receive userDisconnected.")
	}
	if cfg.StrictNegotiation {
		log.Print("Strict negotiation enabled. Offers, answers and candidates that don't parse will be dropped.")
	}
	if cfg.TURNOnly {
		log.Print("TURN only mode enabled. Clients will be told to use relay candidates only.")
	}

	return s
}

// AuthorizedOrigins checks if the incoming request's origin is allowed to
// connect. Requests without an Origin header come from non-browser clients
// and are let through.
func (s *Server) AuthorizedOrigins(r *fasthttp.Request) bool {
	requestOrigin := string(r.Header.Peek("Origin"))
	if requestOrigin == "" {
		return true
	}

	result := origin.IsAllowed(requestOrigin, s.AuthorizedOriginsStorage)
	if !result {
		log.Printf("Origin %s was rejected during connect (host %s)", requestOrigin, r.Host())
	}
	return result
}

// Upgrader rejects disallowed origins with ErrForbidden and anything that
// isn't a websocket upgrade with ErrUpgradeRequired.
func (s *Server) Upgrader(c *fiber.Ctx) error {
	if !s.AuthorizedOrigins(c.Request()) {
		return fiber.ErrForbidden
	}

	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}

	return fiber.ErrUpgradeRequired
}

// Handler runs one websocket connection: it opens a session, dispatches every
// inbound frame in arrival order and runs the disconnect path when the
// connection ends for any reason.
func (srv *Server) Handler(conn *websocket.Conn) {
	s := (*structs.Server)(srv)

	client := session.Open(s, conn)
	defer session.Close(s, client)

	conn.SetReadLimit(s.MaxMessageBytes)
	conn.SetReadDeadline(time.Now().Add(s.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.PongWait))
	})

	for {
		_, rawpacket, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				log.Printf("WebSocket receive error for peer %s: %s", client.ID, err.Error())
			}
			return
		}

		srv.Dispatch(client, rawpacket)
	}
}

// Connect registers a connection so it can be addressed by peer id.
func (srv *Server) Connect(conn structs.Conn) {
	session.Connect((*structs.Server)(srv), conn)
}

// Disconnect runs the disconnect path for a peer id. See session.Disconnect.
func (srv *Server) Disconnect(peerid string) []string {
	return session.Disconnect((*structs.Server)(srv), peerid)
}

// Dispatch decodes one inbound frame and handles it while holding the server
// mutex, so the registry reads and writes of one event never interleave with
// another's. Frames that don't decode are logged and dropped.
func (srv *Server) Dispatch(client structs.Conn, rawpacket []byte) {
	s := (*structs.Server)(srv)

	var packet structs.SignalPacket
	if err := json.Unmarshal(rawpacket, &packet); err != nil {
		log.Printf("Dropping undecodable frame from peer %s: %s", client.PeerID(), err.Error())
		return
	}
	if err := s.PacketValidator.Struct(&packet); err != nil {
		log.Printf("Dropping invalid frame from peer %s: %s", client.PeerID(), err.Error())
		return
	}

	s.Mux.Lock()
	defer s.Mux.Unlock()
	execute_packet(s, client, &packet)
}

// Snapshot returns the member count of every room.
func (srv *Server) Snapshot() []structs.RoomSummary {
	srv.Mux.Lock()
	defer srv.Mux.Unlock()
	return manager.Summaries(srv.Rooms)
}

func execute_packet(s *structs.Server, client structs.Conn, packet *structs.SignalPacket) {
	switch packet.Event {

	// Keep connection alive
	case constants.EventKeepalive:
		handlers.Keepalive(s, client, packet)

	// Returns metadata about the server and the caller's peer id.
	case constants.EventMeta:
		handlers.Meta(s, client, packet)

	// Room membership.
	case constants.EventJoinRoom:
		handlers.JoinRoom(s, client, packet)

	case constants.EventLeaveRoom:
		handlers.LeaveRoom(s, client, packet)

	// Relays SDP offer data.
	case constants.EventStreamOffer:
		handlers.StreamOffer(s, client, packet)

	// Relays SDP answer data.
	case constants.EventStreamAnswer:
		handlers.StreamAnswer(s, client, packet)

	// Relays ICE candidates.
	case constants.EventIceCandidate:
		handlers.IceCandidate(s, client, packet)

	// Provides the ICE servers clients should use.
	case constants.EventGetIceServers:
		handlers.IceServers(s, client, packet)

	// Provides a list of all rooms.
	case constants.EventListRooms:
		handlers.ListRooms(s, client, packet)

	// Provides the members of a room.
	case constants.EventRoomInfo:
		handlers.RoomInfo(s, client, packet)

	default:
		log.Printf("Ignoring unknown event %q from peer %s", packet.Event, client.PeerID())
	}
}
