package superAdminController

import (
	"learnhub/config"
	"learnhub/database"
	"learnhub/logger"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/utils"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// UserList lists users, newest first, with an optional name/email search
func UserList(c *fiber.Ctx) error {
	reqData := c.Locals("validatedList").(*courseValidator.ListQuery)
	page, limit, offset := utils.Pagination(reqData.Page, reqData.Limit)

	db := database.Database.Db.Model(&models.User{})
	if reqData.Search != "" {
		like := "%" + reqData.Search + "%"
		db = db.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	var users []models.User
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User List.", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UpdateUserRole switches a user between LEARNER and ADMIN
func UpdateUserRole(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	targetID := c.Locals("targetUserID").(uint)
	reqData := c.Locals("validatedRole").(*courseValidator.RoleRequest)

	if !models.IsValidRole(reqData.Role) {
		return middleware.ValidationErrorResponse(c, map[string]string{"role": "role must be LEARNER or ADMIN!"})
	}
	if targetID == adminID && reqData.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot remove your own admin role!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, targetID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("role", reqData.Role).Error; err != nil {
		logger.L().Error("role update failed", "userId", targetID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	logger.L().Info("user role changed", "userId", targetID, "role", reqData.Role, "by", adminID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", user)
}

// DeleteUser soft deletes a user other than the caller
func DeleteUser(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	targetID := c.Locals("targetUserID").(uint)

	if targetID == adminID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot delete your own account!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, targetID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Delete(&user).Error; err != nil {
		logger.L().Error("user delete failed", "userId", targetID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	logger.L().Info("user deleted", "userId", targetID, "by", adminID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}

// ResetUserPassword sets a new password for a user
func ResetUserPassword(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	targetID := c.Locals("targetUserID").(uint)
	reqData := c.Locals("validatedPassword").(*courseValidator.PasswordResetRequest)

	var user models.User
	if err := database.Database.Db.First(&user, targetID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		logger.L().Error("password hash failed", "userId", targetID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to hash password!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		logger.L().Error("password reset failed", "userId", targetID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	logger.L().Info("user password reset", "userId", targetID, "by", adminID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password updated successfully!", nil)
}
