package middleware

import "github.com/gofiber/fiber/v2"

const errorLocalKey = "internal_error"

// SetError records an internal failure so the access log can report it
// without the response exposing it.
func SetError(c *fiber.Ctx, err error) {
	c.Locals(errorLocalKey, err)
}

func errorFrom(c *fiber.Ctx) error {
	err, _ := c.Locals(errorLocalKey).(error)
	return err
}
