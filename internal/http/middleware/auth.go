package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"boardapi/internal/auth"
	"boardapi/internal/rbac"
)

const (
	// AccessTokenCookie carries the access token for browser clients.
	AccessTokenCookie = "access_token"

	principalLocalKey = "principal"
)

// Denials surface through the global error handler as UNAUTHORIZED / FORBIDDEN.
var (
	errUnauthorized = fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	errForbidden    = fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
)

// TokenParser verifies an access token.
type TokenParser interface {
	Parse(token string) (auth.Principal, error)
}

// Authenticate accepts "Authorization: Bearer <jwt>" or the access_token
// cookie and stores the caller's principal in locals.
func Authenticate(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			raw = c.Cookies(AccessTokenCookie)
		}
		if raw == "" {
			return errUnauthorized
		}

		p, err := tokens.Parse(raw)
		if err != nil {
			return errUnauthorized
		}
		c.Locals(principalLocalKey, p)
		return c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// PrincipalFrom returns the principal stored by Authenticate.
func PrincipalFrom(c *fiber.Ctx) (auth.Principal, bool) {
	p, ok := c.Locals(principalLocalKey).(auth.Principal)
	return p, ok
}

// RequirePermission lets the request through when the tenant role grants perm.
func RequirePermission(perm rbac.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return errUnauthorized
		}
		if !p.Can(perm) {
			return errForbidden
		}
		return c.Next()
	}
}

// RequireAdmin lets the request through when the back-office role grants perm.
func RequireAdmin(perm rbac.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return errUnauthorized
		}
		if !p.AdminCan(perm) {
			return errForbidden
		}
		return c.Next()
	}
}
