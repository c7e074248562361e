package signaling

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/streamrelay/relay/pkg/constants"
	"github.com/streamrelay/relay/pkg/signaling/origin"
	"github.com/streamrelay/relay/pkg/structs"
)

// NewApp wires the relay into a fiber app: middleware, the HTTP routes and
// the websocket endpoint.
func NewApp(s *Server) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "streamrelay " + constants.Version,
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	// Initialize middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(origin.CORS(s.AuthorizedOriginsStorage))

	// Configure routes
	app.Get("/healthz", s.Health)
	app.Get("/rooms", s.ListRooms)
	app.Get("/ice-servers", s.IceServers)
	app.Use(s.WebsocketPath, s.Upgrader)
	app.Get(s.WebsocketPath, websocket.New(s.Handler))

	return app
}

func (s *Server) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": constants.Version,
	})
}

func (s *Server) ListRooms(c *fiber.Ctx) error {
	return c.JSON(s.Snapshot())
}

func (s *Server) IceServers(c *fiber.Ctx) error {
	return c.JSON(&structs.IceServerConfig{
		IceServers:         s.ICEConfig.ICEServers,
		IceTransportPolicy: s.ICEConfig.ICETransportPolicy,
	})
}
