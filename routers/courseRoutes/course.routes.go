package courseRoutes

import (
	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	validators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog, anonymous or authenticated
	courseGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/categories", controllers.GetCategories)
	courseGroup.Get("/category/:name", validators.CourseList(), validators.CategoryParam(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.OptionalJWT, validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment and learn mode
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
	courseGroup.Get("/:id/learn", middleware.JWTMiddleware, validators.CourseID(), controllers.LearnCourse)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseProgress)

	app.Post("/lesson/:id/complete", middleware.JWTMiddleware, validators.LessonID(), controllers.MarkLessonComplete)

	// Quiz, gated by lesson completion
	quizGroup := app.Group("/quiz", middleware.JWTMiddleware)
	quizGroup.Get("/:id", validators.QuizID(), controllers.GetQuiz)
	quizGroup.Post("/:id/submit", validators.QuizID(), validators.SubmitQuiz(), controllers.SubmitQuiz)

	app.Get("/results/:attemptId", middleware.JWTMiddleware, validators.AttemptID(), controllers.GetQuizResult)

	certGroup := app.Group("/certificate", middleware.JWTMiddleware)
	certGroup.Get("/quiz/:id", validators.QuizID(), controllers.GetCertificate)
	certGroup.Get("/quiz/:id/image", validators.QuizID(), controllers.GetCertificateImage)

	app.Get("/user/dashboard", middleware.JWTMiddleware, controllers.GetUserDashboard)
}
