package controllers

import (
	"errors"

	"learnhub/database"
	"learnhub/logger"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminUpsertQuiz creates the lesson's quiz or replaces its title and questions.
// Past attempts are kept; they hold their own result snapshot.
func AdminUpsertQuiz(c *fiber.Ctx) error {
	lesson, errResp := findLesson(c)
	if lesson == nil {
		return errResp
	}
	reqData := c.Locals("validatedQuiz").(*courseValidator.QuizRequest)

	questions := make([]courseModels.Question, len(reqData.Questions))
	for i, q := range reqData.Questions {
		options := make([]courseModels.QuestionOption, len(q.Options))
		for j, o := range q.Options {
			options[j] = courseModels.QuestionOption{Text: o.Text, IsCorrect: o.IsCorrect, OrderIndex: j + 1}
		}
		questions[i] = courseModels.Question{Text: q.Text, OrderIndex: i + 1, Options: options}
	}

	var quiz courseModels.Quiz
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("lesson_id = ?", lesson.ID).First(&quiz).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			quiz = courseModels.Quiz{LessonID: lesson.ID, Title: reqData.Title}
			if err := tx.Create(&quiz).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&quiz).Update("title", reqData.Title).Error; err != nil {
				return err
			}
			if err := deleteQuestions(tx, quiz.ID); err != nil {
				return err
			}
		}

		for i := range questions {
			questions[i].QuizID = quiz.ID
		}
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}
		quiz.Questions = questions
		return nil
	})
	if err != nil {
		return serverError(c, "Failed to save quiz!", err)
	}

	logger.L().Info("quiz saved", "quizId", quiz.ID, "lessonId", lesson.ID, "questions", len(questions))
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz saved successfully!", quiz)
}

func deleteQuestions(tx *gorm.DB, quizID uint) error {
	var questionIDs []uint
	if err := tx.Model(&courseModels.Question{}).Where("quiz_id = ?", quizID).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if len(questionIDs) == 0 {
		return nil
	}
	if err := tx.Where("question_id IN ?", questionIDs).Delete(&courseModels.QuestionOption{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", questionIDs).Delete(&courseModels.Question{}).Error
}

// AdminGetQuiz returns the lesson's quiz including correct flags.
func AdminGetQuiz(c *fiber.Ctx) error {
	lesson, errResp := findLesson(c)
	if lesson == nil {
		return errResp
	}

	var quizIDs []uint
	if err := database.Database.Db.Model(&courseModels.Quiz{}).Where("lesson_id = ?", lesson.ID).Pluck("id", &quizIDs).Error; err != nil {
		return serverError(c, "Failed to fetch quiz!", err)
	}
	if len(quizIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	quiz, err := loadQuizContent(quizIDs[0])
	if err != nil {
		return serverError(c, "Failed to fetch quiz!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", quiz)
}
