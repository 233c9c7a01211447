package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

const gateTestSecret = "access-secret"

func newGateApp(t *testing.T) *fiber.App {
	t.Helper()

	exemptions, err := NewExemptionList(DefaultExemptions())
	require.NoError(t, err)
	gate := NewGate(exemptions, NewTokenCodec(gateTestSecret, 15*time.Minute))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": de.Code, "message": de.Message},
			})
		},
	})
	app.Use(gate.Handle)

	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) }
	whoami := func(c *fiber.Ctx) error {
		claims, found := ClaimsFromContext(c)
		if !found {
			return c.SendStatus(http.StatusNoContent)
		}
		return c.JSON(fiber.Map{"sub": claims.SubjectID, "admin": claims.IsAdmin})
	}

	app.Get("/api/v1/products/:id", whoami)
	app.Get("/api/v1/orders", whoami)
	app.Delete("/api/v1/users/:id", gate.RequireAdmin(), ok)
	// An exempt path that also declares the admin requirement: the
	// exemption must win.
	app.Get("/api/v1/categories", gate.RequireAdmin(), ok)
	return app
}

func signedToken(t *testing.T, secret, subject string, isAdmin bool, ttl time.Duration) string {
	t.Helper()

	token, _, err := NewTokenCodec(secret, ttl).Issue(subject, isAdmin)
	require.NoError(t, err)
	return token
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.Error.Code
}

func TestGate_Decisions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		tokenVia   string // "cookie" or "header"
		wantStatus int
		wantCode   string
	}{
		{
			name:       "exempt path allows without credential",
			method:     http.MethodGet,
			path:       "/api/v1/products/42",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "exemption outranks admin requirement",
			method:     http.MethodGet,
			path:       "/api/v1/categories",
			wantStatus: http.StatusOK,
		},
		{
			name:       "protected path without credential",
			method:     http.MethodGet,
			path:       "/api/v1/orders",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "admin path without credential",
			method:     http.MethodDelete,
			path:       "/api/v1/users/42",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "wrong signing secret is unauthorized, never forbidden",
			method:     http.MethodDelete,
			path:       "/api/v1/users/42",
			token:      "forged",
			tokenVia:   "cookie",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "expired credential is reported distinctly",
			method:     http.MethodGet,
			path:       "/api/v1/orders",
			token:      "expired",
			tokenVia:   "cookie",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "TOKEN_EXPIRED",
		},
		{
			name:       "non-admin on admin route is forbidden",
			method:     http.MethodDelete,
			path:       "/api/v1/users/42",
			token:      "user",
			tokenVia:   "cookie",
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "admin on admin route",
			method:     http.MethodDelete,
			path:       "/api/v1/users/42",
			token:      "admin",
			tokenVia:   "cookie",
			wantStatus: http.StatusOK,
		},
		{
			name:       "non-admin on ordinary route",
			method:     http.MethodGet,
			path:       "/api/v1/orders",
			token:      "user",
			tokenVia:   "cookie",
			wantStatus: http.StatusOK,
		},
		{
			name:       "bearer header accepted for access credential",
			method:     http.MethodGet,
			path:       "/api/v1/orders",
			token:      "user",
			tokenVia:   "header",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newGateApp(t)
			req := httptest.NewRequest(tt.method, tt.path, nil)

			var token string
			switch tt.token {
			case "user":
				token = signedToken(t, gateTestSecret, "user-1", false, 15*time.Minute)
			case "admin":
				token = signedToken(t, gateTestSecret, "admin-1", true, 15*time.Minute)
			case "expired":
				token = signedToken(t, gateTestSecret, "user-1", false, -time.Minute)
			case "forged":
				token = signedToken(t, "wrong-secret", "user-1", true, 15*time.Minute)
			}
			if token != "" {
				if tt.tokenVia == "header" {
					req.Header.Set("Authorization", "Bearer "+token)
				} else {
					req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})
				}
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, resp))
			}
		})
	}
}

func TestGate_AttachesClaims(t *testing.T) {
	t.Parallel()

	app := newGateApp(t)
	token := signedToken(t, gateTestSecret, "user-7", true, 15*time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload struct {
		Sub   string `json:"sub"`
		Admin bool   `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "user-7", payload.Sub)
	assert.True(t, payload.Admin)
}

func TestGate_ExemptPathIgnoresBadToken(t *testing.T) {
	t.Parallel()

	// Exemption is checked before any credential parsing, so a garbage
	// token on an exempt path never causes a failure.
	app := newGateApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "garbage"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
