package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"boardapi/internal/auth"
	"boardapi/internal/http/middleware"
)

// pathID reads a UUID path parameter.
func pathID(c *fiber.Ctx, name string) (string, error) {
	return parseID(c.Params(name))
}

func parseID(raw string) (string, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return "", badRequest("INVALID_ID", "invalid id format")
	}
	return raw, nil
}

// pageParams reads limit and offset. Range clamping is left to the services.
func pageParams(c *fiber.Ctx) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.Query("limit", "20"))
	if err != nil {
		return 0, 0, badRequest("INVALID_LIMIT", "invalid limit")
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, badRequest("INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, nil
}

func queryBool(c *fiber.Ctx, key string) (bool, error) {
	v := c.Query(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, badRequest("INVALID_QUERY", "invalid "+key)
	}
	return b, nil
}

func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, badRequest("INVALID_QUERY", key+" must be an RFC3339 timestamp")
	}
	return &t, nil
}

// bind decodes a JSON body into dst.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return badRequest("INVALID_BODY", "malformed request body")
	}
	return nil
}

// authed adapts a handler that needs the authenticated caller.
func authed(fn func(c *fiber.Ctx, p auth.Principal) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.PrincipalFrom(c)
		if !ok {
			return fail(c, fiber.NewError(fiber.StatusUnauthorized, "authentication required"))
		}
		return fn(c, p)
	}
}

// list wraps unpaginated collections so every listing shares the "data" key.
func list[T any](items []T) fiber.Map {
	if items == nil {
		items = []T{}
	}
	return fiber.Map{"data": items}
}

func created(c *fiber.Ctx, v any) error {
	return c.Status(fiber.StatusCreated).JSON(v)
}

func noContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
