package heroSlideController

import (
	"learnhub/database"
	"learnhub/logger"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/utils"
	heroSlideValidator "learnhub/validators/heroSlide"

	"github.com/gofiber/fiber/v2"
)

const slideImageDir = "./public/uploads"

func findSlide(c *fiber.Ctx) (*models.HeroSlide, error) {
	var slide models.HeroSlide
	if err := database.Database.Db.First(&slide, c.Locals("slideID").(uint)).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Slide not found!", nil)
	}
	return &slide, nil
}

func serverError(c *fiber.Ctx, message string, err error) error {
	logger.L().Error(message, "method", c.Method(), "path", c.Path(), "error", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, message, nil)
}

// GetActiveSlides lists the slides shown on the landing page
func GetActiveSlides(c *fiber.Ctx) error {
	var slides []models.HeroSlide
	if err := database.Database.Db.Where("is_active = ?", true).Order("order_index asc, id asc").Find(&slides).Error; err != nil {
		return serverError(c, "Failed to fetch slides!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slides fetched successfully!", slides)
}

// AdminListSlides lists every slide with an optional title search
func AdminListSlides(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.HeroSlide{})
	if search := c.Query("search"); search != "" {
		db = db.Where("LOWER(title) LIKE LOWER(?)", "%"+search+"%")
	}

	var slides []models.HeroSlide
	if err := db.Order("order_index asc, id asc").Find(&slides).Error; err != nil {
		return serverError(c, "Failed to fetch slides!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slides fetched successfully!", fiber.Map{
		"slides": slides,
		"total":  len(slides),
	})
}

func AdminGetSlide(c *fiber.Ctx) error {
	slide, errResp := findSlide(c)
	if slide == nil {
		return errResp
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slide fetched successfully!", slide)
}

func AdminCreateSlide(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSlide").(*heroSlideValidator.HeroSlideRequest)

	slide := models.HeroSlide{
		Title:      reqData.Title,
		Subtitle:   reqData.Subtitle,
		ImageURL:   reqData.ImageURL,
		LinkURL:    reqData.LinkURL,
		OrderIndex: reqData.OrderIndex,
		IsActive:   true,
	}
	if reqData.IsActive != nil {
		slide.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Create(&slide).Error; err != nil {
		return serverError(c, "Failed to create slide!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Slide created successfully!", slide)
}

// AdminUpdateSlide updates only the provided fields
func AdminUpdateSlide(c *fiber.Ctx) error {
	slide, errResp := findSlide(c)
	if slide == nil {
		return errResp
	}
	reqData := c.Locals("validatedSlideUpdate").(*heroSlideValidator.HeroSlideUpdateRequest)

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Subtitle != nil {
		updates["subtitle"] = *reqData.Subtitle
	}
	if reqData.ImageURL != nil {
		updates["image_url"] = *reqData.ImageURL
	}
	if reqData.LinkURL != nil {
		updates["link_url"] = *reqData.LinkURL
	}
	if reqData.OrderIndex != nil {
		updates["order_index"] = *reqData.OrderIndex
	}
	if reqData.IsActive != nil {
		updates["is_active"] = *reqData.IsActive
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := database.Database.Db.Model(slide).Updates(updates).Error; err != nil {
		return serverError(c, "Failed to update slide!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slide updated successfully!", slide)
}

func AdminDeleteSlide(c *fiber.Ctx) error {
	slide, errResp := findSlide(c)
	if slide == nil {
		return errResp
	}
	if err := database.Database.Db.Delete(slide).Error; err != nil {
		return serverError(c, "Failed to delete slide!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slide deleted successfully!", nil)
}

// AdminUploadSlideImage stores the uploaded image and points the slide at it
func AdminUploadSlideImage(c *fiber.Ctx) error {
	slide, errResp := findSlide(c)
	if slide == nil {
		return errResp
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"image": "image file is required!"})
	}
	if file.Size > 5<<20 {
		return middleware.ValidationErrorResponse(c, map[string]string{"image": "image must be at most 5MB!"})
	}

	name, err := utils.SaveUploadedImage(file, slideImageDir)
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"image": err.Error()})
	}

	if err := database.Database.Db.Model(slide).Update("image_url", utils.GetFileURL(name)).Error; err != nil {
		return serverError(c, "Failed to update slide!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slide image uploaded successfully!", slide)
}
