package handler

import (
	"github.com/gofiber/fiber/v2"

	"boardapi/internal/auth"
	"boardapi/internal/repository"
	"boardapi/internal/service"
)

type ticketRequest struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Priority string `json:"priority"`
}

type replyRequest struct {
	Body string `json:"body"`
}

type ticketPatchRequest struct {
	Status          *string `json:"status"`
	Priority        *string `json:"priority"`
	AssignedAdminID *string `json:"assigned_admin_id"`
}

// CreateTicket godoc
// @Summary Open a support ticket
// @Tags support
// @Accept json
// @Produce json
// @Param body body ticketRequest true "Ticket"
// @Success 201 {object} model.Ticket
// @Security BearerAuth
// @Router /api/v1/support/tickets [post]
func CreateTicket(svc service.SupportService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		var req ticketRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		t, err := svc.Create(c.UserContext(), p, service.TicketInput{
			Subject:  req.Subject,
			Body:     req.Body,
			Priority: req.Priority,
		})
		if err != nil {
			return fail(c, err)
		}
		return created(c, t)
	})
}

// ListTickets godoc
// @Summary The client's support tickets
// @Tags support
// @Produce json
// @Param status query string false "open, pending, resolved or closed"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.ListResult[model.Ticket]
// @Security BearerAuth
// @Router /api/v1/support/tickets [get]
func ListTickets(svc service.SupportService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.List(c.UserContext(), p, c.Query("status"), limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	})
}

// GetTicket godoc
// @Summary A ticket with its replies
// @Tags support
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} model.Ticket
// @Security BearerAuth
// @Router /api/v1/support/tickets/{id} [get]
func GetTicket(svc service.SupportService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		t, err := svc.Get(c.UserContext(), p, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(t)
	})
}

// ReplyTicket godoc
// @Summary Reply to one's own ticket
// @Tags support
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param body body replyRequest true "Reply"
// @Success 201 {object} model.TicketReply
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/support/tickets/{id}/replies [post]
func ReplyTicket(svc service.SupportService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req replyRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		r, err := svc.Reply(c.UserContext(), p, id, req.Body)
		if err != nil {
			return fail(c, err)
		}
		return created(c, r)
	})
}

// AdminListTickets godoc
// @Summary Support queue across clients
// @Tags admin
// @Produce json
// @Param status query string false "Ticket status"
// @Param client_id query string false "Client ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.ListResult[model.Ticket]
// @Security BearerAuth
// @Router /api/v1/admin/support/tickets [get]
func AdminListTickets(svc service.SupportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		clientID := c.Query("client_id")
		if clientID != "" {
			if _, err := parseID(clientID); err != nil {
				return fail(c, err)
			}
		}
		res, err := svc.AdminList(c.UserContext(), repository.TicketFilter{
			ClientID: clientID,
			Status:   c.Query("status"),
		}, limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	}
}

// AdminGetTicket godoc
// @Summary Any ticket with its replies
// @Tags admin
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} model.Ticket
// @Security BearerAuth
// @Router /api/v1/admin/support/tickets/{id} [get]
func AdminGetTicket(svc service.SupportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		t, err := svc.AdminGet(c.UserContext(), id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(t)
	}
}

// AdminUpdateTicket godoc
// @Summary Change status, priority or assignee of a ticket
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param body body ticketPatchRequest true "Changes"
// @Success 200 {object} model.Ticket
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/admin/support/tickets/{id} [patch]
func AdminUpdateTicket(svc service.SupportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req ticketPatchRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		t, err := svc.AdminUpdate(c.UserContext(), id, service.TicketPatch{
			Status:          req.Status,
			Priority:        req.Priority,
			AssignedAdminID: req.AssignedAdminID,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(t)
	}
}

// AdminReplyTicket godoc
// @Summary Staff reply; emails the ticket opener
// @Description An open ticket moves to pending. A pending or resolved ticket keeps its status. Replies on a closed ticket return 409.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param body body replyRequest true "Reply"
// @Success 201 {object} model.TicketReply
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/admin/support/tickets/{id}/replies [post]
func AdminReplyTicket(svc service.SupportService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req replyRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		r, err := svc.AdminReply(c.UserContext(), p, id, req.Body)
		if err != nil {
			return fail(c, err)
		}
		return created(c, r)
	})
}
