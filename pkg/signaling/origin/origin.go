package origin

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CompilePatterns turns allowed origins into anchored, case-insensitive
// patterns. '*' matches any run of characters; blank entries are skipped.
func CompilePatterns(allowed []string) []*regexp.Regexp {
	var patterns []*regexp.Regexp
	for _, entry := range allowed {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		pattern := "(?i)^" + strings.ReplaceAll(regexp.QuoteMeta(entry), `\*`, `.*`) + "$"
		if regex, err := regexp.Compile(pattern); err == nil {
			patterns = append(patterns, regex)
		}
	}
	return patterns
}

// IsAllowed reports whether the origin matches any of the patterns.
func IsAllowed(origin string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(origin) {
			return true
		}
	}
	return false
}

// CORS answers cross-origin requests from allowed origins with the origin
// echoed back and credentials permitted. Requests without an Origin header
// and requests from other origins pass through untouched.
func CORS(patterns []*regexp.Regexp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestOrigin := c.Get(fiber.HeaderOrigin)
		if requestOrigin == "" || !IsAllowed(requestOrigin, patterns) {
			return c.Next()
		}

		c.Set(fiber.HeaderAccessControlAllowOrigin, requestOrigin)
		c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		c.Vary(fiber.HeaderOrigin)

		// Preflight
		if c.Method() == fiber.MethodOptions && c.Get(fiber.HeaderAccessControlRequestMethod) != "" {
			c.Set(fiber.HeaderAccessControlAllowMethods, "GET,POST,OPTIONS")
			if headers := c.Get(fiber.HeaderAccessControlRequestHeaders); headers != "" {
				c.Set(fiber.HeaderAccessControlAllowHeaders, headers)
			}
			c.Set(fiber.HeaderAccessControlMaxAge, "600")
			return c.SendStatus(fiber.StatusNoContent)
		}

		return c.Next()
	}
}
