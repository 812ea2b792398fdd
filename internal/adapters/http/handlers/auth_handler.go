package handlers

import (
	"errors"
	"strings"

	"moimcheck/internal/adapters/http/middleware"
	"moimcheck/internal/config"
	"moimcheck/internal/core/domain"
	"moimcheck/internal/core/services"
	"moimcheck/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles admin login
// @Summary Admin login
// @Description Verify admin credentials and set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid_body")
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "credentials_required")
	}

	token, info, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.Unauthorized(c, "invalid_credentials")
		}
		return response.InternalServerError(c, "internal_error")
	}

	middleware.SetSessionCookie(c, h.cfg, token, h.authService.TTL())

	return response.Success(c, fiber.Map{
		"username":   info.Username,
		"expires_at": info.ExpiresAt,
	})
}

// Logout handles admin logout
// @Summary Admin logout
// @Description Purge the session and clear the cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookieName)
	if token != "" {
		_ = h.authService.Logout(c.Context(), token)
	}
	middleware.ClearSessionCookie(c, h.cfg)

	return response.Success(c, fiber.Map{
		"logged_out": true,
	})
}

// Me reports the caller's admin state
// @Summary Current session
// @Description Report whether the caller holds a live admin session
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookieName)

	info, err := h.authService.Verify(c.Context(), token)
	if err != nil {
		// Anonymous is a normal state here, not a 401
		return response.Success(c, fiber.Map{
			"is_admin": false,
		})
	}

	return response.Success(c, fiber.Map{
		"is_admin":   true,
		"admin_id":   info.AdminID,
		"username":   info.Username,
		"expires_at": info.ExpiresAt,
	})
}
