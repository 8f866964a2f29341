package handler

import (
	"github.com/gofiber/fiber/v2"

	"boardapi/internal/auth"
	"boardapi/internal/service"
)

type teamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type addMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListTeams godoc
// @Summary List teams
// @Tags teams
// @Produce json
// @Success 200 {array} model.Team
// @Security BearerAuth
// @Router /api/v1/teams [get]
func ListTeams(svc service.TeamService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		teams, err := svc.List(c.UserContext(), p)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(list(teams))
	})
}

// CreateTeam godoc
// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Param body body teamRequest true "Team"
// @Success 201 {object} model.Team
// @Security BearerAuth
// @Router /api/v1/teams [post]
func CreateTeam(svc service.TeamService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		var req teamRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		team, err := svc.Create(c.UserContext(), p, service.TeamInput{
			Name:        deref(req.Name),
			Description: deref(req.Description),
		})
		if err != nil {
			return fail(c, err)
		}
		return created(c, team)
	})
}

// GetTeam godoc
// @Summary Get a team with its members
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} model.Team
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/teams/{id} [get]
func GetTeam(svc service.TeamService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		team, err := svc.Get(c.UserContext(), p, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(team)
	})
}

// UpdateTeam godoc
// @Summary Rename or describe a team
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param body body teamRequest true "Changes"
// @Success 200 {object} model.Team
// @Security BearerAuth
// @Router /api/v1/teams/{id} [patch]
func UpdateTeam(svc service.TeamService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req teamRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		team, err := svc.Update(c.UserContext(), p, id, service.TeamPatch{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(team)
	})
}

// DeleteTeam godoc
// @Summary Delete a team
// @Tags teams
// @Param id path string true "Team ID"
// @Success 204
// @Security BearerAuth
// @Router /api/v1/teams/{id} [delete]
func DeleteTeam(svc service.TeamService) fiber.Handler {
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

// AddTeamMember godoc
// @Summary Add a user to a team and notify them by email
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param body body addMemberRequest true "Member"
// @Success 201 {object} model.TeamMember
// @Security BearerAuth
// @Router /api/v1/teams/{id}/members [post]
func AddTeamMember(svc service.TeamService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req addMemberRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		m, err := svc.AddMember(c.UserContext(), p, id, req.UserID, req.Role)
		if err != nil {
			return fail(c, err)
		}
		return created(c, m)
	})
}

// RemoveTeamMember godoc
// @Summary Remove a user from a team
// @Tags teams
// @Param id path string true "Team ID"
// @Param userId path string true "User ID"
// @Success 204
// @Security BearerAuth
// @Router /api/v1/teams/{id}/members/{userId} [delete]
func RemoveTeamMember(svc service.TeamService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		userID, err := pathID(c, "userId")
		if err != nil {
			return fail(c, err)
		}
		if err := svc.RemoveMember(c.UserContext(), p, id, userID); err != nil {
			return fail(c, err)
		}
		return noContent(c)
	})
}
