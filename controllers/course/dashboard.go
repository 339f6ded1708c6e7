package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"

	"github.com/gofiber/fiber/v2"
)

type dashboardEnrollment struct {
	courseModels.Enrollment
	CourseTitle string `json:"course_title"`
	Category    string `json:"category"`
}

type dashboardAttempt struct {
	courseModels.QuizAttempt
	QuizTitle string `json:"quiz_title"`
	CourseID  uint   `json:"course_id"`
}

// GetUserDashboard summarises the caller's enrollments, attempts and earned certificates.
func GetUserDashboard(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	db := database.Database.Db

	var enrollments []dashboardEnrollment
	if err := db.Model(&courseModels.Enrollment{}).
		Select("enrollments.*, courses.title AS course_title, courses.category AS category").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.created_at desc").
		Scan(&enrollments).Error; err != nil {
		return serverError(c, "Failed to fetch enrollments!", err)
	}

	var completed, inProgress int
	for _, e := range enrollments {
		switch e.Status {
		case courseModels.EnrollmentCompleted:
			completed++
		case courseModels.EnrollmentInProgress:
			inProgress++
		}
	}

	var attempts []dashboardAttempt
	if err := db.Model(&courseModels.QuizAttempt{}).
		Select("quiz_attempts.*, quizzes.title AS quiz_title, lessons.course_id AS course_id").
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Joins("JOIN lessons ON lessons.id = quizzes.lesson_id").
		Where("quiz_attempts.user_id = ?", userID).
		Order("quiz_attempts.created_at desc, quiz_attempts.id desc").
		Scan(&attempts).Error; err != nil {
		return serverError(c, "Failed to fetch quiz attempts!", err)
	}

	// attempts are newest first, so the first passing attempt per quiz is its certificate source
	seen := make(map[uint]bool)
	certificates := make([]dashboardAttempt, 0)
	for _, a := range attempts {
		if a.Passed && !seen[a.QuizID] {
			seen[a.QuizID] = true
			certificates = append(certificates, a)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"enrollments":       enrollments,
		"completed_count":   completed,
		"in_progress_count": inProgress,
		"attempts":          attempts,
		"certificates":      certificates,
	})
}
