package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionWriter sets and clears the session cookies. Cookies are httpOnly
// with SameSite=None; the secure flag is on in production. Each cookie's
// max-age matches its token's TTL.
type SessionWriter struct {
	secure bool
}

// NewSessionWriter builds a writer; secure marks production transport.
func NewSessionWriter(secure bool) *SessionWriter {
	return &SessionWriter{secure: secure}
}

// WriteAccess sets the access token cookie.
func (w *SessionWriter) WriteAccess(c *fiber.Ctx, token string, ttl time.Duration) {
	w.write(c, AccessCookieName, token, ttl)
}

// WriteRefresh sets the refresh token cookie.
func (w *SessionWriter) WriteRefresh(c *fiber.Ctx, token string, ttl time.Duration) {
	w.write(c, RefreshCookieName, token, ttl)
}

// Clear expires both session cookies client-side. Tokens already issued
// remain valid until their own expiry; logout is stateless revocation.
func (w *SessionWriter) Clear(c *fiber.Ctx) {
	w.write(c, AccessCookieName, "", -time.Hour)
	w.write(c, RefreshCookieName, "", -time.Hour)
}

func (w *SessionWriter) write(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   w.secure,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}
