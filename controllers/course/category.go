package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"

	"github.com/gofiber/fiber/v2"
)

type categorySummary struct {
	Name        string `json:"name"`
	CourseCount int64  `json:"course_count"`
}

func listCategories(publishedOnly bool) ([]categorySummary, error) {
	db := database.Database.Db.Model(&courseModels.Course{}).
		Select("category AS name, COUNT(*) AS course_count").
		Where("category <> ''")
	if publishedOnly {
		db = db.Where("is_published = ?", true)
	}

	categories := []categorySummary{}
	err := db.Group("category").Order("category asc").Scan(&categories).Error
	return categories, err
}

// GetCategories lists categories that have at least one published course.
func GetCategories(c *fiber.Ctx) error {
	categories, err := listCategories(true)
	if err != nil {
		return serverError(c, "Failed to fetch categories!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// AdminGetCategories lists every category in use, drafts included.
func AdminGetCategories(c *fiber.Ctx) error {
	categories, err := listCategories(false)
	if err != nil {
		return serverError(c, "Failed to fetch categories!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}
