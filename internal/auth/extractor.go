package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CredentialFromRequest returns the raw session token stored in the cookie
// named cookieName. Missing, empty or blank cookies are reported as absent.
func CredentialFromRequest(c *fiber.Ctx, cookieName string) (string, bool) {
	raw := strings.TrimSpace(c.Cookies(cookieName))
	if raw == "" {
		return "", false
	}
	return raw, true
}
