package controllers

import (
	"learnhub/middleware"
	"learnhub/services"

	"github.com/gofiber/fiber/v2"
)

// MarkLessonComplete records the lesson as watched. Repeating it is a no-op.
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	lessonID := c.Locals("lessonID").(uint)
	ctx := c.UserContext()

	lesson, err := services.Learning.MarkLessonComplete(ctx, userID, lessonID)
	if err != nil {
		return learningError(c, err, 0)
	}

	unlocked, err := services.Learning.IsQuizUnlocked(ctx, userID, lesson.CourseID)
	if err != nil {
		return learningError(c, err, lesson.CourseID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as complete!", fiber.Map{
		"success":       true,
		"lesson_id":     lesson.ID,
		"course_id":     lesson.CourseID,
		"quiz_unlocked": unlocked,
	})
}

// GetCourseProgress reports lesson completion for the caller.
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)
	ctx := c.UserContext()

	progress, err := services.Learning.Progress(ctx, userID, courseID)
	if err != nil {
		return learningError(c, err, courseID)
	}
	state, err := services.Learning.CourseState(ctx, userID, courseID)
	if err != nil {
		return learningError(c, err, courseID)
	}

	percent := 0.0
	if progress.TotalLessons > 0 {
		percent = float64(progress.CompletedLessons) / float64(progress.TotalLessons) * 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"status":               state,
		"total_lessons":        progress.TotalLessons,
		"completed_lessons":    progress.CompletedLessons,
		"completed_lesson_ids": progress.CompletedLessonIDs,
		"progress":             percent,
		"quiz_unlocked":        progress.AllCompleted(),
	})
}
