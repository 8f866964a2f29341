package handler

import (
	"github.com/gofiber/fiber/v2"

	"boardapi/internal/auth"
	"boardapi/internal/service"
)

type flagRequest struct {
	Description    string   `json:"description"`
	Enabled        bool     `json:"enabled"`
	ClientIDs      []string `json:"client_ids"`
	RolloutPercent int      `json:"rollout_percent"`
}

// EvaluateFlags godoc
// @Summary Every feature flag evaluated for the caller's client
// @Tags flags
// @Produce json
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /api/v1/feature-flags [get]
func EvaluateFlags(svc service.FlagService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		vals, err := svc.Evaluate(c.UserContext(), p)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(vals)
	})
}

// ListFlags godoc
// @Summary List feature flag definitions
// @Tags admin
// @Produce json
// @Success 200 {array} model.FeatureFlag
// @Security BearerAuth
// @Router /api/v1/admin/feature-flags [get]
func ListFlags(svc service.FlagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(list(items))
	}
}

// PutFlag godoc
// @Summary Create or replace a feature flag
// @Tags admin
// @Accept json
// @Produce json
// @Param key path string true "Flag key"
// @Param body body flagRequest true "Flag"
// @Success 200 {object} model.FeatureFlag
// @Security BearerAuth
// @Router /api/v1/admin/feature-flags/{key} [put]
func PutFlag(svc service.FlagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req flagRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		f, err := svc.Upsert(c.UserContext(), c.Params("key"), service.FlagInput{
			Description:    req.Description,
			Enabled:        req.Enabled,
			ClientIDs:      req.ClientIDs,
			RolloutPercent: req.RolloutPercent,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(f)
	}
}

// DeleteFlag godoc
// @Summary Delete a feature flag
// @Tags admin
// @Param key path string true "Flag key"
// @Success 204
// @Security BearerAuth
// @Router /api/v1/admin/feature-flags/{key} [delete]
func DeleteFlag(svc service.FlagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("key")); err != nil {
			return fail(c, err)
		}
		return noContent(c)
	}
}
