package middleware

import (
	"errors"
	"time"

	"moimcheck/internal/config"
	"moimcheck/internal/core/domain"
	"moimcheck/internal/core/services"
	"moimcheck/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the admin session token
const SessionCookieName = "admin_session"

// AdminSession guards admin-only routes. Each authenticated request slides
// the session expiry forward and re-arms the cookie to match. Failures never
// distinguish missing, expired and forged tokens.
func AdminSession(authService *services.AuthService, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)

		info, err := authService.Refresh(c.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrNoSession) {
				ClearSessionCookie(c, cfg)
				return response.Unauthorized(c, "unauthorized")
			}
			return response.InternalServerError(c, "internal_error")
		}

		SetSessionCookie(c, cfg, token, authService.TTL())
		c.Locals("adminID", info.AdminID)
		c.Locals("adminUsername", info.Username)

		return c.Next()
	}
}

// SetSessionCookie writes the admin session cookie with the configured
// security attributes
func SetSessionCookie(c *fiber.Ctx, cfg *config.Config, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.Cookie.Domain,
		MaxAge:   int(ttl.Seconds()),
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
	})
}

// ClearSessionCookie expires the admin session cookie immediately
func ClearSessionCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Cookie.Domain,
		MaxAge:   -1,
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
	})
}
