package handler

import (
	"github.com/gofiber/fiber/v2"

	"boardapi/internal/auth"
	"boardapi/internal/service"
)

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

// ListUsers godoc
// @Summary List users of the caller's client
// @Tags users
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.ListResult[model.User]
// @Security BearerAuth
// @Router /api/v1/users [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.List(c.UserContext(), p, limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	})
}

// CreateUser godoc
// @Summary Create a user, taking a license seat
// @Tags users
// @Accept json
// @Produce json
// @Param body body createUserRequest true "User"
// @Success 201 {object} model.User
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/users [post]
func CreateUser(svc service.UserService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		var req createUserRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		u, err := svc.Create(c.UserContext(), p, service.CreateUserInput{
			Email:    req.Email,
			Name:     req.Name,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			return fail(c, err)
		}
		return created(c, u)
	})
}

// UpdateUser godoc
// @Summary Update a user's name, role or active flag
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body updateUserRequest true "Changes"
// @Success 200 {object} model.User
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/v1/users/{id} [patch]
func UpdateUser(svc service.UserService) fiber.Handler {
	return authed(func(c *fiber.Ctx, p auth.Principal) error {
		id, err := pathID(c, "id")
		if err != nil {
			return fail(c, err)
		}
		var req updateUserRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		u, err := svc.Update(c.UserContext(), p, id, service.UpdateUserInput{
			Name:   req.Name,
			Role:   req.Role,
			Active: req.Active,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(u)
	})
}
