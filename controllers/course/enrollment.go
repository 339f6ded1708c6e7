package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	"learnhub/services"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse is idempotent: enrolling twice returns the existing enrollment unchanged.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_published = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	res, err := services.Learning.Enroll(c.UserContext(), userID, courseID)
	if err != nil {
		return learningError(c, err, courseID)
	}

	if !res.Created {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled in this course.", res.Enrollment)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", res.Enrollment)
}

// LearnCourse is the learn-mode view, open only to IN_PROGRESS enrollments.
func LearnCourse(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)
	ctx := c.UserContext()

	enrollment, err := services.Learning.RequireLearnAccess(ctx, userID, courseID)
	if err != nil {
		return learningError(c, err, courseID)
	}

	var course courseModels.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	progress, err := services.Learning.Progress(ctx, userID, courseID)
	if err != nil {
		return learningError(c, err, courseID)
	}
	lessons, err := loadLessons(courseID)
	if err != nil {
		return serverError(c, "Failed to fetch lessons!", err)
	}

	completed := make(map[uint]bool, len(progress.CompletedLessonIDs))
	for _, id := range progress.CompletedLessonIDs {
		completed[id] = true
	}
	summaries, quizID := summarize(lessons, completed, true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", fiber.Map{
		"course":            course,
		"enrollment":        enrollment,
		"lessons":           summaries,
		"total_lessons":     progress.TotalLessons,
		"completed_lessons": progress.CompletedLessons,
		"quiz_id":           quizID,
		"quiz_unlocked":     progress.AllCompleted(),
	})
}
