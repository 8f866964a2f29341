package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/service"
)

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TeamID      *string `json:"team_id"`
	TemplateID  *string `json:"template_id"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	TeamID      *string `json:"team_id"`
}

type templateRequest struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Columns     []model.TemplateColumn    `json:"columns"`
	Milestones  []model.TemplateMilestone `json:"milestones"`
}

type saveTemplateRequest struct {
	Name string `json:"name"`
}

// ListProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Param archived query bool false "List archived projects instead of active ones"
// @Param team_id query string false "Filter by team"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.ListResult[model.Project]
// @Security BearerAuth
// @Router /api/v1/projects [get]
func ListProjects(svc service.ProjectService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		archived, err := queryBool(c, "archived")
		if err != nil {
			return fail(c, err)
		}
		teamID := c.Query("team_id")
		if teamID != "" {
			if _, err := parseID(teamID); err != nil {
				return fail(c, err)
			}
		}

		res, err := svc.List(c.UserContext(), p, service.ProjectQuery{
			Archived: archived,
			TeamID:   teamID,
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	})
}

// CreateProject godoc
// @Summary Create a project and its board
// @Tags projects
// @Accept json
// @Produce json
// @Param body body createProjectRequest true "Project"
// @Success 201 {object} model.Project
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/projects [post]
func CreateProject(svc service.ProjectService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		var req createProjectRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		proj, err := svc.Create(c.UserContext(), p, service.CreateProjectInput{
			Name:        req.Name,
			Description: req.Description,
			TeamID:      req.TeamID,
			TemplateID:  req.TemplateID,
		})
		if err != nil {
			return fail(c, err)
		}
		return created(c, proj)
	})
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} model.Project
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/projects/{id} [get]
func GetProject(svc service.ProjectService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		proj, err := svc.Get(c.UserContext(), p, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(proj)
	})
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body updateProjectRequest true "Changes"
// @Success 200 {object} model.Project
// @Security BearerAuth
// @Router /api/v1/projects/{id} [patch]
func UpdateProject(svc service.ProjectService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req updateProjectRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		proj, err := svc.Update(c.UserContext(), p, id, service.UpdateProjectInput{
			Name:        req.Name,
			Description: req.Description,
			TeamID:      req.TeamID,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(proj)
	})
}

// ArchiveProject godoc
// @Summary Archive a project, making it read-only
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} model.Project
// @Security BearerAuth
// @Router /api/v1/projects/{id}/archive [post]
func ArchiveProject(svc service.ProjectService) fiber.Handler {
	return projectAction(svc.Archive)
}

// RestoreProject godoc
// @Summary Restore an archived project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} model.Project
// @Security BearerAuth
// @Router /api/v1/projects/{id}/restore [post]
func RestoreProject(svc service.ProjectService) fiber.Handler {
	return projectAction(svc.Restore)
}

func projectAction(fn func(ctx context.Context, p auth.Principal, id string) (*model.Project, error)) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		proj, err := fn(c.UserContext(), p, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(proj)
	})
}

// DeleteProject godoc
// @Summary Soft-delete a project
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204
// @Security BearerAuth
// @Router /api/v1/projects/{id} [delete]
func DeleteProject(svc service.ProjectService) fiber.Handler {
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

// ListTemplates godoc
// @Summary List global templates and the client's own
// @Tags templates
// @Produce json
// @Success 200 {array} model.ProjectTemplate
// @Security BearerAuth
// @Router /api/v1/templates [get]
func ListTemplates(svc service.ProjectService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		items, err := svc.ListTemplates(c.UserContext(), p)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(list(items))
	})
}

// CreateTemplate godoc
// @Summary Create a project template
// @Tags templates
// @Accept json
// @Produce json
// @Param body body templateRequest true "Template"
// @Success 201 {object} model.ProjectTemplate
// @Security BearerAuth
// @Router /api/v1/templates [post]
func CreateTemplate(svc service.ProjectService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		var req templateRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		tpl, err := svc.CreateTemplate(c.UserContext(), p, service.TemplateInput{
			Name:        req.Name,
			Description: req.Description,
			Columns:     req.Columns,
			Milestones:  req.Milestones,
		})
		if err != nil {
			return fail(c, err)
		}
		return created(c, tpl)
	})
}

// SaveProjectAsTemplate godoc
// @Summary Save a project's board as a template
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body saveTemplateRequest true "Template name"
// @Success 201 {object} model.ProjectTemplate
// @Security BearerAuth
// @Router /api/v1/projects/{id}/template [post]
func SaveProjectAsTemplate(svc service.ProjectService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req saveTemplateRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		tpl, err := svc.SaveAsTemplate(c.UserContext(), p, id, req.Name)
		if err != nil {
			return fail(c, err)
		}
		return created(c, tpl)
	})
}

// DeleteTemplate godoc
// @Summary Delete one of the client's templates
// @Tags templates
// @Param id path string true "Template ID"
// @Success 204
// @Security BearerAuth
// @Router /api/v1/templates/{id} [delete]
func DeleteTemplate(svc service.ProjectService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		if err := svc.DeleteTemplate(c.UserContext(), p, id); err != nil {
			return fail(c, err)
		}
		return noContent(c)
	})
}
