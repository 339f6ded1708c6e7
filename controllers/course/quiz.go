package controllers

import (
	"encoding/json"
	"errors"

	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	"learnhub/services"
	"learnhub/services/learning"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type optionView struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type questionView struct {
	ID      uint         `json:"id"`
	Text    string       `json:"text"`
	Options []optionView `json:"options"`
}

func loadQuizContent(quizID uint) (*courseModels.Quiz, error) {
	var quiz courseModels.Quiz
	err := database.Database.Db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc, id asc") }).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc, id asc") }).
		First(&quiz, quizID).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// quizCourseID resolves the course owning a quiz.
func quizCourseID(quizID uint) (uint, error) {
	var courseID uint
	res := database.Database.Db.Table("quizzes").
		Select("lessons.course_id").
		Joins("JOIN lessons ON lessons.id = quizzes.lesson_id").
		Where("quizzes.id = ?", quizID).
		Limit(1).
		Scan(&courseID)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, learning.ErrQuizNotFound
	}
	return courseID, nil
}

// GetQuiz shows the quiz once every lesson of its course is complete. Correct flags are never sent.
func GetQuiz(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(uint)

	ref, err := services.Learning.QuizAccess(c.UserContext(), userID, quizID)
	if err != nil {
		var courseID uint
		if ref != nil {
			courseID = ref.CourseID
		}
		return learningError(c, err, courseID)
	}

	quiz, err := loadQuizContent(quizID)
	if err != nil {
		return serverError(c, "Failed to fetch quiz!", err)
	}

	questions := make([]questionView, len(quiz.Questions))
	for i, q := range quiz.Questions {
		options := make([]optionView, len(q.Options))
		for j, o := range q.Options {
			options[j] = optionView{ID: o.ID, Text: o.Text}
		}
		questions[i] = questionView{ID: q.ID, Text: q.Text, Options: options}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"id":             quiz.ID,
		"title":          quiz.Title,
		"lesson_id":      ref.LessonID,
		"course_id":      ref.CourseID,
		"questions":      questions,
		"pass_threshold": learning.PassThreshold,
	})
}

// SubmitQuiz grades a submission and records the attempt.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(uint)
	reqData := c.Locals("validatedSubmission").(*courseValidator.SubmitQuizRequest)

	res, err := services.Learning.SubmitQuiz(c.UserContext(), userID, quizID, learning.Answers(reqData.Answers))
	if err != nil {
		var courseID uint
		if errors.Is(err, learning.ErrQuizLocked) {
			id, lookupErr := quizCourseID(quizID)
			if lookupErr != nil {
				return serverError(c, "Failed to submit quiz!", lookupErr)
			}
			courseID = id
		}
		return learningError(c, err, courseID)
	}

	message := "Quiz submitted. Score 70% or more to pass."
	if res.Passed {
		message = "Quiz passed!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, res)
}

// GetQuizResult shows one of the caller's own attempts.
func GetQuizResult(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	attemptID := c.Locals("attemptID").(uint)

	attempt, err := services.Learning.FindAttempt(c.UserContext(), attemptID)
	if err != nil {
		return learningError(c, err, 0)
	}
	if attempt.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own results!", nil)
	}

	var results []learning.QuestionResult
	if len(attempt.Results) > 0 {
		if err := json.Unmarshal(attempt.Results, &results); err != nil {
			return serverError(c, "Failed to read result!", err)
		}
	}

	var quiz courseModels.Quiz
	var lesson courseModels.Lesson
	if err := database.Database.Db.First(&quiz, attempt.QuizID).Error; err == nil {
		database.Database.Db.Unscoped().Select("id", "course_id").First(&lesson, quiz.LessonID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result fetched successfully!", fiber.Map{
		"attempt":    attempt,
		"results":    results,
		"quiz_title": quiz.Title,
		"course_id":  lesson.CourseID,
	})
}
