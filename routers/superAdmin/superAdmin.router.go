package superAdminRoutes

import (
	superAdminController "learnhub/controllers/superAdmin"
	"learnhub/middleware"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupSuperAdminRoutes(app *fiber.App) {
	userGroup := app.Group("/admin/user", middleware.JWTMiddleware, middleware.AdminOnly())

	userGroup.Get("/list", courseValidator.CourseList(), superAdminController.UserList)
	userGroup.Put("/:id/role", courseValidator.UserID(), courseValidator.UpdateUserRole(), superAdminController.UpdateUserRole)
	userGroup.Put("/:id/password", courseValidator.UserID(), courseValidator.ResetUserPassword(), superAdminController.ResetUserPassword)
	userGroup.Delete("/:id", courseValidator.UserID(), superAdminController.DeleteUser)
}
