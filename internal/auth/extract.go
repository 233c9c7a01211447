package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Session cookie names shared by the gate and the session endpoints.
const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// ExtractAccessToken locates a candidate access credential: the session
// cookie first, then an Authorization: Bearer header. It only locates the
// string; it never judges it.
func ExtractAccessToken(c *fiber.Ctx) (string, bool) {
	if token := c.Cookies(AccessCookieName); token != "" {
		return token, true
	}
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// ExtractRefreshToken locates the refresh credential. Refresh tokens travel
// only in their cookie; there is no header fallback for them.
func ExtractRefreshToken(c *fiber.Ctx) (string, bool) {
	token := c.Cookies(RefreshCookieName)
	return token, token != ""
}
