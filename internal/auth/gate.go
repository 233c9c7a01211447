package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

const (
	claimsKey = "auth_claims"
	exemptKey = "auth_exempt"
)

// Gate decides per request whether it may proceed: exempt paths pass
// untouched, everything else needs a valid, unexpired access credential.
// It holds only immutable state and is safe for concurrent use.
type Gate struct {
	exemptions *ExemptionList
	access     *TokenCodec
}

// NewGate builds the gate from the compiled exemption list and the access
// token codec.
func NewGate(exemptions *ExemptionList, access *TokenCodec) *Gate {
	return &Gate{exemptions: exemptions, access: access}
}

// Handle enforces authentication. The exemption check always runs before
// any credential parsing, so exempt paths never fail on a bad token.
func (g *Gate) Handle(c *fiber.Ctx) error {
	if g.exemptions.IsExempt(c.Path(), c.Method()) {
		c.Locals(exemptKey, true)
		return c.Next()
	}

	token, ok := ExtractAccessToken(c)
	if !ok {
		return apperrors.NewUnauthorized("missing credential")
	}

	claims, err := g.access.Verify(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewTokenExpired()
		}
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// RequireAdmin gates administrator-only routes. Exempt requests pass
// regardless: the exemption list outranks any privilege requirement.
func (g *Gate) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if exempt, _ := c.Locals(exemptKey).(bool); exempt {
			return c.Next()
		}
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("missing credential")
		}
		if !claims.IsAdmin {
			return apperrors.NewForbidden("administrator privilege required")
		}
		return c.Next()
	}
}

// ClaimsFromContext retrieves the verified claims attached by Handle.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
