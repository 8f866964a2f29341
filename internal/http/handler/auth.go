package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"boardapi/internal/auth"
	"boardapi/internal/http/middleware"
	"boardapi/internal/service"
)

// CookieOptions controls the access_token cookie set on login and refresh.
type CookieOptions struct {
	Secure bool
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func setAccessCookie(c *fiber.Ctx, opts CookieOptions, pair *service.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		Expires:  pair.ExpiresAt,
		HTTPOnly: true,
		Secure:   opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearAccessCookie(c *fiber.Ctx, opts CookieOptions) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} service.TokenPair
// @Failure 401 {object} errorPayload
// @Failure 403 {object} errorPayload
// @Failure 429 {object} errorPayload
// @Router /api/v1/auth/login [post]
func Login(svc service.AuthService, opts CookieOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		pair, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return fail(c, err)
		}
		setAccessCookie(c, opts, pair)
		return c.JSON(pair)
	}
}

// Refresh godoc
// @Summary Rotate a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body refreshRequest true "Refresh token"
// @Success 200 {object} service.TokenPair
// @Failure 401 {object} errorPayload
// @Router /api/v1/auth/refresh [post]
func Refresh(svc service.AuthService, opts CookieOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req refreshRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		pair, err := svc.Refresh(c.UserContext(), req.RefreshToken)
		if err != nil {
			return fail(c, err)
		}
		setAccessCookie(c, opts, pair)
		return c.JSON(pair)
	}
}

// Logout godoc
// @Summary Revoke a refresh token and clear the cookie
// @Tags auth
// @Accept json
// @Param body body refreshRequest true "Refresh token"
// @Success 204
// @Router /api/v1/auth/logout [post]
func Logout(svc service.AuthService, opts CookieOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req refreshRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		if err := svc.Logout(c.UserContext(), req.RefreshToken); err != nil {
			return fail(c, err)
		}
		clearAccessCookie(c, opts)
		return noContent(c)
	}
}

// Me godoc
// @Summary Current principal and user
// @Tags auth
// @Produce json
// @Success 200 {object} service.Me
// @Failure 401 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/auth/me [get]
func Me(svc service.AuthService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		me, err := svc.Me(c.UserContext(), p)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(me)
	})
}
