package origin

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"wildcard", []string{"*"}, "https://example.com", true},
		{"exact", []string{"https://app.example.com"}, "https://app.example.com", true},
		{"case insensitive", []string{"https://app.example.com"}, "https://APP.example.com", true},
		{"subdomain wildcard", []string{"https://*.example.com"}, "https://a.example.com", true},
		{"subdomain wildcard other host", []string{"https://*.example.com"}, "https://example.org", false},
		{"dots are literal", []string{"https://app.example.com"}, "https://appxexample.com", false},
		{"blank entries ignored", []string{" ", ""}, "https://example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsAllowed(tt.origin, CompilePatterns(tt.allowed))
			if got != tt.want {
				t.Fatalf("IsAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func newCORSApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Use(CORS(CompilePatterns(allowed)))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app
}

func TestCORSEchoesAllowedOrigin(t *testing.T) {
	app := newCORSApp("*")

	req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://viewer.example.com")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://viewer.example.com" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("Access-Control-Allow-Credentials = %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	app := newCORSApp("https://viewer.example.com")

	req := httptest.NewRequest(fiber.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://viewer.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusNoContent)
	}
	if got := resp.Header.Get("Access-Control-Allow-Headers"); got != "content-type" {
		t.Fatalf("Access-Control-Allow-Headers = %q", got)
	}
}

func TestCORSIgnoresDisallowedOrigin(t *testing.T) {
	app := newCORSApp("https://viewer.example.com")

	req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want none", got)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
