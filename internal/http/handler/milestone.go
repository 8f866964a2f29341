package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"boardapi/internal/auth"
	"boardapi/internal/service"
)

type milestoneRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	DueDate      *time.Time `json:"due_date"`
	ClearDueDate bool       `json:"clear_due_date"`
}

// ListMilestones godoc
// @Summary Milestones of a project with their progress
// @Tags milestones
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} model.Milestone
// @Security BearerAuth
// @Router /api/v1/projects/{id}/milestones [get]
func ListMilestones(svc service.MilestoneService) fiber.Handler {
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

// CreateMilestone godoc
// @Summary Create a milestone
// @Tags milestones
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body milestoneRequest true "Milestone"
// @Success 201 {object} model.Milestone
// @Security BearerAuth
// @Router /api/v1/projects/{id}/milestones [post]
func CreateMilestone(svc service.MilestoneService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req milestoneRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		m, err := svc.Create(c.UserContext(), p, id, service.MilestoneInput{
			Title:       deref(req.Title),
			Description: deref(req.Description),
			DueDate:     req.DueDate,
		})
		if err != nil {
			return fail(c, err)
		}
		return created(c, m)
	})
}

// GetMilestone godoc
// @Summary Get a milestone
// @Tags milestones
// @Produce json
// @Param id path string true "Milestone ID"
// @Success 200 {object} model.Milestone
// @Security BearerAuth
// @Router /api/v1/milestones/{id} [get]
func GetMilestone(svc service.MilestoneService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		m, err := svc.Get(c.UserContext(), p, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(m)
	})
}

// UpdateMilestone godoc
// @Summary Update a milestone
// @Tags milestones
// @Accept json
// @Produce json
// @Param id path string true "Milestone ID"
// @Param body body milestoneRequest true "Changes"
// @Success 200 {object} model.Milestone
// @Security BearerAuth
// @Router /api/v1/milestones/{id} [patch]
func UpdateMilestone(svc service.MilestoneService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req milestoneRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		m, err := svc.Update(c.UserContext(), p, id, service.MilestonePatch{
			Title:        req.Title,
			Description:  req.Description,
			DueDate:      req.DueDate,
			ClearDueDate: req.ClearDueDate,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(m)
	})
}

// DeleteMilestone godoc
// @Summary Delete a milestone, detaching its tasks
// @Tags milestones
// @Param id path string true "Milestone ID"
// @Success 204
// @Security BearerAuth
// @Router /api/v1/milestones/{id} [delete]
func DeleteMilestone(svc service.MilestoneService) fiber.Handler {
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
