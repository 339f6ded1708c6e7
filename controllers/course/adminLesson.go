package controllers

import (
	"errors"

	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errNotPermutation = errors.New("lesson ids do not match the course")

func findLesson(c *fiber.Ctx) (*courseModels.Lesson, error) {
	lessonID := c.Locals("lessonID").(uint)
	var lesson courseModels.Lesson
	if err := database.Database.Db.First(&lesson, lessonID).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}
	return &lesson, nil
}

// AdminCreateLesson appends a lesson to the course; its rank is one past the current last.
func AdminCreateLesson(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}
	reqData := c.Locals("validatedLesson").(*courseValidator.LessonRequest)

	lesson := courseModels.Lesson{
		CourseID: course.ID,
		Title:    reqData.Title,
		VideoURL: reqData.VideoURL,
		Duration: reqData.Duration,
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var last struct{ Max *int }
		if err := tx.Model(&courseModels.Lesson{}).
			Select("MAX(order_index) AS max").
			Where("course_id = ?", course.ID).
			Scan(&last).Error; err != nil {
			return err
		}
		lesson.OrderIndex = 1
		if last.Max != nil {
			lesson.OrderIndex = *last.Max + 1
		}
		return tx.Create(&lesson).Error
	})
	if err != nil {
		return serverError(c, "Failed to create lesson!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

func AdminUpdateLesson(c *fiber.Ctx) error {
	lesson, errResp := findLesson(c)
	if lesson == nil {
		return errResp
	}
	reqData := c.Locals("validatedLessonUpdate").(*courseValidator.LessonUpdateRequest)

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.VideoURL != nil {
		updates["video_url"] = *reqData.VideoURL
	}
	if reqData.Duration != nil {
		updates["duration"] = *reqData.Duration
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := database.Database.Db.Model(lesson).Updates(updates).Error; err != nil {
		return serverError(c, "Failed to update lesson!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminDeleteLesson soft deletes a lesson. It stops counting toward the quiz gate.
func AdminDeleteLesson(c *fiber.Ctx) error {
	lesson, errResp := findLesson(c)
	if lesson == nil {
		return errResp
	}

	if err := database.Database.Db.Delete(lesson).Error; err != nil {
		return serverError(c, "Failed to delete lesson!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// AdminReorderLessons ranks the course's lessons 1..N in the submitted order.
func AdminReorderLessons(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}
	reqData := c.Locals("validatedReorder").(*courseValidator.ReorderRequest)

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&courseModels.Lesson{}).Where("course_id = ?", course.ID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) != len(reqData.LessonIDs) {
			return errNotPermutation
		}
		existing := make(map[uint]bool, len(ids))
		for _, id := range ids {
			existing[id] = true
		}
		for _, id := range reqData.LessonIDs {
			if !existing[id] {
				return errNotPermutation
			}
		}

		for i, id := range reqData.LessonIDs {
			if err := tx.Model(&courseModels.Lesson{}).Where("id = ?", id).Update("order_index", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, errNotPermutation) {
		return middleware.ValidationErrorResponse(c, map[string]string{"lesson_ids": "lesson_ids must list every lesson of the course exactly once!"})
	}
	if err != nil {
		return serverError(c, "Failed to reorder lessons!", err)
	}

	lessons, err := loadLessons(course.ID)
	if err != nil {
		return serverError(c, "Failed to fetch lessons!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons reordered successfully!", lessons)
}
