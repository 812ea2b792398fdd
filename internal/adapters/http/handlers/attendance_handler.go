package handlers

import (
	"errors"
	"strings"

	"moimcheck/internal/adapters/http/middleware"
	"moimcheck/internal/core/domain"
	"moimcheck/internal/core/services"
	"moimcheck/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AttendanceHandler handles check-in endpoints. These are public routes with
// an optional admin session: on Sundays anyone may check in, on other days
// the session decides.
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
	authService       *services.AuthService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(
	attendanceService *services.AttendanceService,
	authService *services.AuthService,
) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		authService:       authService,
	}
}

// CheckRequest represents a check-in request body
type CheckRequest struct {
	MemberID string `json:"member_id"`
	Status   string `json:"status"`
}

// AbsentRequest represents a mark-absent request body
type AbsentRequest struct {
	MemberID string `json:"member_id"`
}

// Check handles a member check-in for today
// @Summary Check in
// @Description Record PRESENT or LATE for a member on today's KST date
// @Tags Attendance
// @Accept json
// @Produce json
// @Param body body CheckRequest true "Check-in data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /attendance/check [post]
func (h *AttendanceHandler) Check(c *fiber.Ctx) error {
	var req CheckRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid_body")
	}
	if req.MemberID == "" {
		return response.BadRequest(c, "member_id_required")
	}

	status := domain.AttendanceStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	rec, dayKey, err := h.attendanceService.CheckIn(c.Context(), req.MemberID, status, h.hasAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			return response.BadRequest(c, "invalid_status")
		case errors.Is(err, domain.ErrAdminRequired):
			return response.Unauthorized(c, "admin_required")
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "member_not_found")
		default:
			return response.InternalServerError(c, "internal_error")
		}
	}

	return response.Success(c, fiber.Map{
		"date":   dayKey,
		"record": rec,
	})
}

// Absent handles marking a member absent for today
// @Summary Mark absent
// @Description Remove today's attendance record for a member
// @Tags Attendance
// @Accept json
// @Produce json
// @Param body body AbsentRequest true "Member reference"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /attendance/absent [post]
func (h *AttendanceHandler) Absent(c *fiber.Ctx) error {
	var req AbsentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid_body")
	}
	if req.MemberID == "" {
		return response.BadRequest(c, "member_id_required")
	}

	dayKey, err := h.attendanceService.MarkAbsent(c.Context(), req.MemberID, h.hasAdmin(c))
	if err != nil {
		if errors.Is(err, domain.ErrAdminRequired) {
			return response.Unauthorized(c, "admin_required")
		}
		return response.InternalServerError(c, "internal_error")
	}

	return response.Success(c, fiber.Map{
		"date":   dayKey,
		"status": string(domain.StatusAbsent),
	})
}

// hasAdmin reports whether the caller presented a live admin session. A
// bare Verify, not Refresh: an optional peek should not slide the window.
func (h *AttendanceHandler) hasAdmin(c *fiber.Ctx) bool {
	token := c.Cookies(middleware.SessionCookieName)
	if token == "" {
		return false
	}
	_, err := h.authService.Verify(c.Context(), token)
	return err == nil
}
