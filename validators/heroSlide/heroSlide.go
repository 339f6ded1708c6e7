package heroSlideValidator

import (
	"strings"

	"learnhub/middleware"
	"learnhub/validators"

	"github.com/gofiber/fiber/v2"
)

type HeroSlideRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Subtitle   string `json:"subtitle" validate:"max=500"`
	ImageURL   string `json:"image_url" validate:"required,max=500"`
	LinkURL    string `json:"link_url" validate:"required,max=500"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
	IsActive   *bool  `json:"is_active"`
}

type HeroSlideUpdateRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=200"`
	Subtitle   *string `json:"subtitle" validate:"omitempty,max=500"`
	ImageURL   *string `json:"image_url" validate:"omitempty,min=1,max=500"`
	LinkURL    *string `json:"link_url" validate:"omitempty,min=1,max=500"`
	OrderIndex *int    `json:"order_index" validate:"omitempty,min=0"`
	IsActive   *bool   `json:"is_active"`
}

// CreateHeroSlide validates a new slide body.
func CreateHeroSlide() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(HeroSlideRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.ImageURL = strings.TrimSpace(reqData.ImageURL)
		reqData.LinkURL = strings.TrimSpace(reqData.LinkURL)

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSlide", reqData)
		return c.Next()
	}
}

func UpdateHeroSlide() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(HeroSlideUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSlideUpdate", reqData)
		return c.Next()
	}
}

func SlideID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validators.ParamID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Slide ID!", nil)
		}
		c.Locals("slideID", id)
		return c.Next()
	}
}
