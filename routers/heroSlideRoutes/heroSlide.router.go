package heroSlideRoutes

import (
	heroSlideController "learnhub/controllers/heroSlide"
	"learnhub/middleware"
	heroSlideValidator "learnhub/validators/heroSlide"

	"github.com/gofiber/fiber/v2"
)

func SetupHeroSlideRoutes(app *fiber.App) {
	app.Get("/hero-slides", heroSlideController.GetActiveSlides)

	adminGroup := app.Group("/admin/hero-slides", middleware.JWTMiddleware, middleware.AdminOnly())
	adminGroup.Get("/", heroSlideController.AdminListSlides)
	adminGroup.Post("/", heroSlideValidator.CreateHeroSlide(), heroSlideController.AdminCreateSlide)
	adminGroup.Get("/:id", heroSlideValidator.SlideID(), heroSlideController.AdminGetSlide)
	adminGroup.Put("/:id", heroSlideValidator.SlideID(), heroSlideValidator.UpdateHeroSlide(), heroSlideController.AdminUpdateSlide)
	adminGroup.Delete("/:id", heroSlideValidator.SlideID(), heroSlideController.AdminDeleteSlide)
	adminGroup.Post("/:id/image", heroSlideValidator.SlideID(), heroSlideController.AdminUploadSlideImage)
}
