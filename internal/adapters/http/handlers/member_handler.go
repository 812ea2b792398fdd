package handlers

import (
	"errors"

	"moimcheck/internal/core/domain"
	"moimcheck/internal/core/services"
	"moimcheck/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List handles the ranked member roster
// @Summary Member roster
// @Description List active members ranked by total points with today's status
// @Tags Members
// @Produce json
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	roster, todayKey, err := h.memberService.Roster(c.Context())
	if err != nil {
		return response.InternalServerError(c, "internal_error")
	}

	return response.Success(c, fiber.Map{
		"date":    todayKey,
		"members": roster,
	})
}

// Create handles member creation
// @Summary Create member
// @Description Register a new member (admin only)
// @Tags Members
// @Accept json
// @Produce json
// @Param body body services.CreateMemberInput true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var input services.CreateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid_body")
	}

	member, err := h.memberService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidBirthDate):
			return response.BadRequest(c, "invalid_birth_date")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "invalid_input")
		default:
			return response.InternalServerError(c, "internal_error")
		}
	}

	return response.Created(c, member)
}

// Update handles partial member updates
// @Summary Update member
// @Description Apply a partial update to a member (admin only)
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param body body services.UpdateMemberInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [patch]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	var input services.UpdateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid_body")
	}

	err := h.memberService.Update(c.Context(), c.Params("id"), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "member_not_found")
		case errors.Is(err, domain.ErrNoChanges):
			return response.BadRequest(c, "no_changes")
		case errors.Is(err, domain.ErrInvalidBirthDate):
			return response.BadRequest(c, "invalid_birth_date")
		default:
			return response.InternalServerError(c, "internal_error")
		}
	}

	return response.Success(c, fiber.Map{"updated": true})
}

// Delete handles member deactivation
// @Summary Delete member
// @Description Deactivate a member; attendance history is kept (admin only)
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	err := h.memberService.Deactivate(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "member_not_found")
		}
		return response.InternalServerError(c, "internal_error")
	}

	return response.Success(c, fiber.Map{"deleted": true})
}

// Stats handles per-member statistics
// @Summary Member statistics
// @Description Member profile with points and month/year attendance breakdown
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/stats [get]
func (h *MemberHandler) Stats(c *fiber.Ctx) error {
	detail, err := h.memberService.Detail(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "member_not_found")
		}
		return response.InternalServerError(c, "internal_error")
	}

	return response.Success(c, detail)
}
