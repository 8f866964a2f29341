package handler

import (
	"github.com/gofiber/fiber/v2"

	"boardapi/internal/auth"
	"boardapi/internal/service"
)

// UploadAttachment godoc
// @Summary Attach a file to a task
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Task ID"
// @Param file formData file true "File"
// @Success 201 {object} model.Attachment
// @Failure 400 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/tasks/{id}/attachments [post]
func UploadAttachment(svc service.AttachmentService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		a, err := svc.Upload(c.UserContext(), p, id, service.UploadInput{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
		})
		if err != nil {
			return fail(c, err)
		}
		return created(c, a)
	})
}

// ListAttachments godoc
// @Summary Attachments of a task with presigned download URLs
// @Tags attachments
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {array} model.Attachment
// @Security BearerAuth
// @Router /api/v1/tasks/{id}/attachments [get]
func ListAttachments(svc service.AttachmentService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		items, err := svc.List(c.UserContext(), p, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(list(items))
	})
}

// DeleteAttachment godoc
// @Summary Delete an attachment and its stored object
// @Tags attachments
// @Param id path string true "Attachment ID"
// @Success 204
// @Security BearerAuth
// @Router /api/v1/attachments/{id} [delete]
func DeleteAttachment(svc service.AttachmentService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		if err := svc.Delete(c.UserContext(), p, id); err != nil {
			return fail(c, err)
		}
		return noContent(c)
	})
}
