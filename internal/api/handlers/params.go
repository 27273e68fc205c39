package handlers

import (
	"strconv"

	"preben-prepper/domain"

	"github.com/gofiber/fiber/v2"
)

func paramID(c *fiber.Ctx, key string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrParseID
	}
	return uint(id), nil
}

func queryID(c *fiber.Ctx, key string) (uint, error) {
	id, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrParseID
	}
	return uint(id), nil
}

// currentUser returns the authenticated user's id and role. ok is false on
// routes that allow anonymous access when no token was sent.
func currentUser(c *fiber.Ctx) (id uint, role string, ok bool) {
	id, ok = c.Locals("user_id").(uint)
	role, _ = c.Locals("role").(string)
	return id, role, ok
}
