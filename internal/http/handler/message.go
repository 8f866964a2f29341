package handler

import (
	"github.com/gofiber/fiber/v2"

	"boardapi/internal/auth"
	"boardapi/internal/service"
)

type messageRequest struct {
	Body     string  `json:"body"`
	ParentID *string `json:"parent_id"`
}

// ListMessages godoc
// @Summary Project messages, newest first
// @Tags messages
// @Produce json
// @Param id path string true "Project ID"
// @Param before query string false "RFC3339 cursor; only older messages are returned"
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} model.Message
// @Security BearerAuth
// @Router /api/v1/projects/{id}/messages [get]
func ListMessages(svc service.MessageService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		limit, _, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		before, err := queryTime(c, "before")
		if err != nil {
			return fail(c, err)
		}
		msgs, err := svc.List(c.UserContext(), p, id, before, limit)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(list(msgs))
	})
}

// CreateMessage godoc
// @Summary Post a message, optionally as a reply
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body messageRequest true "Message"
// @Success 201 {object} model.Message
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/projects/{id}/messages [post]
func CreateMessage(svc service.MessageService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req messageRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		m, err := svc.Create(c.UserContext(), p, id, req.Body, req.ParentID)
		if err != nil {
			return fail(c, err)
		}
		return created(c, m)
	})
}

// UpdateMessage godoc
// @Summary Edit one's own message
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param body body messageRequest true "New body"
// @Success 200 {object} model.Message
// @Failure 403 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/messages/{id} [patch]
func UpdateMessage(svc service.MessageService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req messageRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		m, err := svc.Update(c.UserContext(), p, id, req.Body)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(m)
	})
}

// DeleteMessage godoc
// @Summary Delete a message (author, owner or admin)
// @Tags messages
// @Param id path string true "Message ID"
// @Success 204
// @Failure 403 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/messages/{id} [delete]
func DeleteMessage(svc service.MessageService) fiber.Handler {
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
