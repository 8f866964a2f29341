package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"boardapi/internal/auth"
	"boardapi/internal/repository"
	"boardapi/internal/service"
)

type planRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	MaxProjects int    `json:"max_projects"`
	MaxSeats    int    `json:"max_seats"`
	PriceCents  int64  `json:"price_cents"`
	Active      *bool  `json:"active"`
}

type planPatchRequest struct {
	Name        *string `json:"name"`
	MaxProjects *int    `json:"max_projects"`
	MaxSeats    *int    `json:"max_seats"`
	PriceCents  *int64  `json:"price_cents"`
	Active      *bool   `json:"active"`
}

type ownerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type createClientRequest struct {
	Name   string       `json:"name"`
	Slug   string       `json:"slug"`
	PlanID string       `json:"plan_id"`
	Owner  ownerRequest `json:"owner"`
}

type clientPatchRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

type licenseRequest struct {
	PlanID    string     `json:"plan_id"`
	Seats     int        `json:"seats"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type profileRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// ListPlans godoc
// @Summary List plans
// @Tags admin
// @Produce json
// @Success 200 {array} model.Plan
// @Security BearerAuth
// @Router /api/v1/admin/plans [get]
func ListPlans(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		plans, err := svc.ListPlans(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(list(plans))
	}
}

// CreatePlan godoc
// @Summary Create a plan
// @Tags admin
// @Accept json
// @Produce json
// @Param body body planRequest true "Plan"
// @Success 201 {object} model.Plan
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/admin/plans [post]
func CreatePlan(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req planRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		active := true
		if req.Active != nil {
			active = *req.Active
		}
		plan, err := svc.CreatePlan(c.UserContext(), service.PlanInput{
			Code:        req.Code,
			Name:        req.Name,
			MaxProjects: req.MaxProjects,
			MaxSeats:    req.MaxSeats,
			PriceCents:  req.PriceCents,
			Active:      active,
		})
		if err != nil {
			return fail(c, err)
		}
		return created(c, plan)
	}
}

// UpdatePlan godoc
// @Summary Update a plan
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param body body planPatchRequest true "Changes"
// @Success 200 {object} model.Plan
// @Security BearerAuth
// @Router /api/v1/admin/plans/{id} [patch]
func UpdatePlan(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req planPatchRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		plan, err := svc.UpdatePlan(c.UserContext(), id, service.PlanPatch{
			Name:        req.Name,
			MaxProjects: req.MaxProjects,
			MaxSeats:    req.MaxSeats,
			PriceCents:  req.PriceCents,
			Active:      req.Active,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(plan)
	}
}

// ListClients godoc
// @Summary Search clients
// @Tags admin
// @Produce json
// @Param q query string false "Name or slug fragment"
// @Param status query string false "active or suspended"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.ListResult[model.Client]
// @Security BearerAuth
// @Router /api/v1/admin/clients [get]
func ListClients(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.ListClients(c.UserContext(), repository.ClientFilter{
			Query:  c.Query("q"),
			Status: c.Query("status"),
		}, limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	}
}

// GetClient godoc
// @Summary A client with its license, limits and usage
// @Tags admin
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} service.ClientDetail
// @Security BearerAuth
// @Router /api/v1/admin/clients/{id} [get]
func GetClient(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		detail, err := svc.GetClient(c.UserContext(), id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(detail)
	}
}

// CreateClient godoc
// @Summary Create a client with its license and owner
// @Tags admin
// @Accept json
// @Produce json
// @Param body body createClientRequest true "Client"
// @Success 201 {object} service.CreatedClient
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/admin/clients [post]
func CreateClient(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createClientRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		res, err := svc.CreateClient(c.UserContext(), service.CreateClientInput{
			Name:   req.Name,
			Slug:   req.Slug,
			PlanID: req.PlanID,
			Owner: service.OwnerInput{
				Email:    req.Owner.Email,
				Name:     req.Owner.Name,
				Password: req.Owner.Password,
			},
		})
		if err != nil {
			return fail(c, err)
		}
		return created(c, res)
	}
}

// UpdateClient godoc
// @Summary Rename, suspend or reactivate a client
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param body body clientPatchRequest true "Changes"
// @Success 200 {object} model.Client
// @Security BearerAuth
// @Router /api/v1/admin/clients/{id} [patch]
func UpdateClient(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req clientPatchRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		cl, err := svc.UpdateClient(c.UserContext(), id, service.ClientPatch{
			Name:   req.Name,
			Status: req.Status,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(cl)
	}
}

// SetLicense godoc
// @Summary Replace a client's license
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param body body licenseRequest true "License"
// @Success 200 {object} model.License
// @Security BearerAuth
// @Router /api/v1/admin/clients/{id}/license [put]
func SetLicense(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req licenseRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		lic, err := svc.SetLicense(c.UserContext(), id, service.LicenseInput{
			PlanID:    req.PlanID,
			Seats:     req.Seats,
			Status:    req.Status,
			ExpiresAt: req.ExpiresAt,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(lic)
	}
}

// ListProfiles godoc
// @Summary Back-office admin profiles
// @Tags admin
// @Produce json
// @Success 200 {array} model.AdminProfile
// @Security BearerAuth
// @Router /api/v1/admin/profiles [get]
func ListProfiles(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListProfiles(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(list(items))
	}
}

// UpsertProfile godoc
// @Summary Grant or change a back-office role
// @Tags admin
// @Accept json
// @Produce json
// @Param body body profileRequest true "Profile"
// @Success 200 {object} model.AdminProfile
// @Security BearerAuth
// @Router /api/v1/admin/profiles [post]
func UpsertProfile(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req profileRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		if _, err := parseID(req.UserID); err != nil {
			return fail(c, err)
		}
		prof, err := svc.UpsertProfile(c.UserContext(), req.UserID, req.Role)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(prof)
	}
}

// DeleteProfile godoc
// @Summary Revoke a back-office role
// @Tags admin
// @Param userId path string true "User ID"
// @Success 204
// @Failure 403 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/admin/profiles/{userId} [delete]
func DeleteProfile(svc service.AdminService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		userID, err := pathID(c, "userId")
		if err != nil {
			return fail(c, err)
		}
		if err := svc.DeleteProfile(c.UserContext(), p, userID); err != nil {
			return fail(c, err)
		}
		return noContent(c)
	})
}

// AdminStats godoc
// @Summary Platform counters
// @Tags admin
// @Produce json
// @Success 200 {object} service.Stats
// @Security BearerAuth
// @Router /api/v1/admin/stats [get]
func AdminStats(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Stats(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(st)
	}
}
