package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"github.com/streamrelay/relay/pkg/structs"
)

var flagURL string

var (
	primary     = lipgloss.Color("#7D56F4")
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primary).Padding(0, 1)
	rowStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List the rooms on a running relay",
	Long: `Query a running relay for its rooms and their member counts.

Examples:
  streamrelay rooms
  streamrelay rooms --url https://relay.example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rooms, err := fetchRooms(flagURL)
		if err != nil {
			return err
		}
		fmt.Println(roomsView(rooms))
		return nil
	},
}

func fetchRooms(baseURL string) ([]structs.RoomSummary, error) {
	agent := fiber.Get(strings.TrimRight(baseURL, "/") + "/rooms").Timeout(5 * time.Second)
	if err := agent.Parse(); err != nil {
		return nil, err
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("query %s: %w", baseURL, errs[0])
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("query %s: unexpected status %d", baseURL, code)
	}

	var rooms []structs.RoomSummary
	if err := json.Unmarshal(body, &rooms); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	return rooms, nil
}

func roomsView(rooms []structs.RoomSummary) string {
	if len(rooms) == 0 {
		return mutedStyle.Render("No rooms")
	}

	rows := make([][]string, 0, len(rooms))
	for _, room := range rooms {
		rows = append(rows, []string{room.RoomID, strconv.Itoa(room.Members)})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(primary)).
		Headers("Room", "Members").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return rowStyle
		})

	return tbl.Render()
}

func init() {
	rootCmd.AddCommand(roomsCmd)
	roomsCmd.Flags().StringVarP(&flagURL, "url", "u", "http://localhost:3000", "Base URL of the relay")
}
