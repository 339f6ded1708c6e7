package middleware

import (
	"errors"

	"learnhub/database"
	"learnhub/logger"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// currentUser loads the token's user once per request and caches it in Locals("authUser").
// Soft-deleted users are not found.
func currentUser(c *fiber.Ctx) (*models.User, error) {
	if user, ok := c.Locals("authUser").(*models.User); ok && user != nil {
		return user, nil
	}
	userID, ok := c.Locals("userId").(uint)
	if !ok || userID == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var user models.User
	if err := database.Database.Db.Select("id", "role").Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	c.Locals("authUser", &user)
	c.Locals("role", user.Role)
	return &user, nil
}

// RequireRole returns a middleware that only lets users holding one of the roles through.
// The role is read from the database so a role change takes effect before the token expires.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userId").(uint); !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		user, err := currentUser(c)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
			}
			logger.L().Error("role lookup failed", "userId", c.Locals("userId"), "error", err)
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

// AdminOnly gates admin routes.
func AdminOnly() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}
