package controllers

import (
	"errors"
	"fmt"

	"learnhub/logger"
	"learnhub/middleware"
	"learnhub/services/learning"

	"github.com/gofiber/fiber/v2"
)

func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userId").(uint)
	return userID, ok && userID > 0
}

func courseRedirect(courseID uint, reason string) fiber.Map {
	return fiber.Map{"redirect": fmt.Sprintf("/course/%d?error=%s", courseID, reason)}
}

// learningError maps core errors onto the response envelope. courseID names the fallback view
// for gate violations.
func learningError(c *fiber.Ctx, err error, courseID uint) error {
	switch {
	case errors.Is(err, learning.ErrInvalidInput):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	case errors.Is(err, learning.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, learning.ErrLessonNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	case errors.Is(err, learning.ErrQuizNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	case errors.Is(err, learning.ErrAttemptNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Result not found!", nil)
	case errors.Is(err, learning.ErrLearnAccessDenied):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enroll in this course to start learning!", courseRedirect(courseID, "not_enrolled"))
	case errors.Is(err, learning.ErrQuizLocked):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete every lesson to unlock the quiz!", courseRedirect(courseID, "not_completed"))
	default:
		logger.L().Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}

func serverError(c *fiber.Ctx, message string, err error) error {
	logger.L().Error(message, "method", c.Method(), "path", c.Path(), "error", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, message, nil)
}
