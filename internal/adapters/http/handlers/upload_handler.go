package handlers

import (
	"io"

	"moimcheck/internal/adapters/storage"
	"moimcheck/internal/config"
	"moimcheck/internal/pkg/photo"
	"moimcheck/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// maxUploadBytes caps the raw upload before normalization (10 MiB)
const maxUploadBytes = 10 << 20

// UploadHandler handles member photo uploads (admin only). Photos are
// normalized server-side before they ever reach the blob store.
type UploadHandler struct {
	store storage.BlobStorage
	cfg   *config.Config
}

// NewUploadHandler creates a new upload handler. A nil store means the
// deployment runs without photo storage; the endpoints then return 503.
func NewUploadHandler(store storage.BlobStorage, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		store: store,
		cfg:   cfg,
	}
}

// DeleteRequest represents a photo deletion request body
type DeleteRequest struct {
	URL string `json:"url"`
}

// MemberPhoto handles a member photo upload
// @Summary Upload member photo
// @Description Normalize an uploaded image to 512x512 WebP and store it (admin only)
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file (JPEG, PNG or WebP)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /uploads/member-photo [post]
func (h *UploadHandler) MemberPhoto(c *fiber.Ctx) error {
	if h.store == nil {
		return response.ServiceUnavailable(c, "storage_not_configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "file_required")
	}
	if fileHeader.Size > maxUploadBytes {
		return response.Error(c, fiber.StatusRequestEntityTooLarge, "file_too_large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "file_unreadable")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return response.BadRequest(c, "file_unreadable")
	}

	normalized, err := photo.Normalize(data)
	if err != nil {
		return response.BadRequest(c, "invalid_image")
	}

	key := storage.ObjectKey(h.cfg.Storage.Folder)
	url, err := h.store.Put(key, normalized, "image/webp")
	if err != nil {
		return response.InternalServerError(c, "upload_failed")
	}

	return response.Success(c, fiber.Map{"url": url})
}

// Delete handles a photo deletion
// @Summary Delete member photo
// @Description Remove a stored photo by its public URL (admin only)
// @Tags Uploads
// @Accept json
// @Produce json
// @Param body body DeleteRequest true "Photo URL"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /uploads/delete [post]
func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	if h.store == nil {
		return response.ServiceUnavailable(c, "storage_not_configured")
	}

	var req DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid_body")
	}
	if req.URL == "" {
		return response.BadRequest(c, "url_required")
	}

	if err := h.store.Delete(req.URL); err != nil {
		return response.InternalServerError(c, "delete_failed")
	}

	return response.Success(c, fiber.Map{"deleted": true})
}
