package cmd

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/streamrelay/relay/pkg/structs"
)

func TestRoomsView(t *testing.T) {
	if got := roomsView(nil); !strings.Contains(got, "No rooms") {
		t.Fatalf("empty view = %q", got)
	}

	view := roomsView([]structs.RoomSummary{{RoomID: "lobby", Members: 3}, {RoomID: "stage", Members: 1}})
	for _, want := range []string{"Room", "Members", "lobby", "3", "stage"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestFetchRooms(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/rooms", func(c *fiber.Ctx) error {
		return c.JSON([]structs.RoomSummary{{RoomID: "lobby", Members: 2}})
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go app.Listener(ln)
	t.Cleanup(func() { app.ShutdownWithTimeout(time.Second) })

	rooms, err := fetchRooms("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rooms) != 1 || rooms[0].RoomID != "lobby" || rooms[0].Members != 2 {
		t.Fatalf("rooms = %+v", rooms)
	}

	if _, err := fetchRooms("http://" + ln.Addr().String() + "/missing"); err == nil {
		t.Fatal("404 should be an error")
	}
}
