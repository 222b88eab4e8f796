package middleware

import (
	"ccw/database"
	"ccw/models"

	"github.com/gofiber/fiber/v2"
)

// RequireUser loads the authenticated user and refuses suspended accounts.
// Runs after JWTMiddleware on every authenticated route.
func RequireUser(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !user.IsActive {
		return JsonResponse(c, fiber.StatusForbidden, false, "Account suspended. Contact support.", nil)
	}

	c.Locals("user", user)
	return c.Next()
}

// AdminOnly gates the admin surface. Every admin route goes through this
// single guard instead of repeating the role check per handler.
func AdminOnly(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if user.Role != "ADMIN" {
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	return c.Next()
}
