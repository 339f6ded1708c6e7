package courseRoutes

import (
	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	validators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	admin := []fiber.Handler{middleware.JWTMiddleware, middleware.AdminOnly()}

	// Course CRUD
	courseGroup := app.Group("/admin/course", admin...)
	courseGroup.Post("/create", validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	courseGroup.Get("/list", validators.CourseList(), controllers.AdminGetAllCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.AdminGetCourseDetails)
	courseGroup.Put("/:id", validators.CourseID(), validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	courseGroup.Delete("/:id", validators.CourseID(), controllers.AdminDeleteCourse)
	courseGroup.Post("/:id/thumbnail", validators.CourseID(), controllers.AdminUploadThumbnail)

	// Lessons
	courseGroup.Post("/:id/lesson", validators.CourseID(), validators.CreateLesson(), controllers.AdminCreateLesson)
	courseGroup.Put("/:id/lessons/order", validators.CourseID(), validators.ReorderLessons(), controllers.AdminReorderLessons)

	lessonGroup := app.Group("/admin/lesson", admin...)
	lessonGroup.Put("/:id", validators.LessonID(), validators.UpdateLesson(), controllers.AdminUpdateLesson)
	lessonGroup.Delete("/:id", validators.LessonID(), controllers.AdminDeleteLesson)

	// Quiz authoring
	lessonGroup.Get("/:id/quiz", validators.LessonID(), controllers.AdminGetQuiz)
	lessonGroup.Put("/:id/quiz", validators.LessonID(), validators.UpsertQuiz(), controllers.AdminUpsertQuiz)

	// Enrollments and progress
	courseGroup.Get("/:id/enrollments", validators.CourseID(), validators.CourseList(), controllers.AdminGetCourseEnrollments)
	app.Get("/admin/categories", append(admin, controllers.AdminGetCategories)...)
	app.Delete("/admin/enrollment/:id", append(admin, validators.EnrollmentID(), controllers.AdminDeleteEnrollment)...)
	app.Get("/admin/student/:id/progress", append(admin, validators.UserID(), controllers.AdminGetStudentProgress)...)

	// Dashboard and maintenance
	app.Get("/admin/dashboard/stats", append(admin, controllers.AdminDashboardStats)...)
	app.Post("/admin/reconcile", append(admin, controllers.AdminReconcile)...)
}
