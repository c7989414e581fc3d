package controller

import (
	"github.com/gofiber/fiber/v2"

	"lecturelama-be/internal/pkg/serverutils"
)

func JwtProtected() fiber.Handler {
	return serverutils.JwtMiddleware
}

// SessionID reads the session id put into Locals by the JWT middleware.
func SessionID(ctx *fiber.Ctx) string {
	if v, ok := ctx.Locals("session_id").(string); ok {
		return v
	}
	return ""
}
