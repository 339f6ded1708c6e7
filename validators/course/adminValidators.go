package courseValidator

import (
	"fmt"
	"strings"

	"learnhub/middleware"
	"learnhub/validators"

	"github.com/gofiber/fiber/v2"
)

type CourseRequest struct {
	Title        string `json:"title" validate:"required,min=3,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	Category     string `json:"category" validate:"max=100"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,max=500"`
	IsPublished  bool   `json:"is_published"`
}

type CourseUpdateRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=3,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=5000"`
	Category     *string `json:"category" validate:"omitempty,max=100"`
	ThumbnailURL *string `json:"thumbnail_url" validate:"omitempty,max=500"`
	IsPublished  *bool   `json:"is_published"`
}

type LessonRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	VideoURL string `json:"video_url" validate:"required,url,max=500"`
	Duration *int   `json:"duration" validate:"omitempty,min=0"`
}

type LessonUpdateRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=200"`
	VideoURL *string `json:"video_url" validate:"omitempty,url,max=500"`
	Duration *int    `json:"duration" validate:"omitempty,min=0"`
}

type ReorderRequest struct {
	LessonIDs []uint `json:"lesson_ids" validate:"required,min=1,unique,dive,gt=0"`
}

type OptionRequest struct {
	Text      string `json:"text" validate:"required,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionRequest struct {
	Text    string          `json:"text" validate:"required,max=2000"`
	Options []OptionRequest `json:"options" validate:"required,min=2,dive"`
}

type QuizRequest struct {
	Title     string            `json:"title" validate:"required,max=200"`
	Questions []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=LEARNER ADMIN"`
}

type PasswordResetRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

func parseBody(c *fiber.Ctx, reqData interface{}, key string) error {
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if errors := validators.Struct(reqData); errors != nil {
		return middleware.ValidationErrorResponse(c, errors)
	}
	c.Locals(key, reqData)
	return c.Next()
}

func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody(c, new(CourseRequest), "validatedCourse")
	}
}

func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody(c, new(CourseUpdateRequest), "validatedCourseUpdate")
	}
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody(c, new(LessonRequest), "validatedLesson")
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody(c, new(LessonUpdateRequest), "validatedLessonUpdate")
	}
}

func ReorderLessons() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody(c, new(ReorderRequest), "validatedReorder")
	}
}

func UpdateUserRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody(c, new(RoleRequest), "validatedRole")
	}
}

func ResetUserPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody(c, new(PasswordResetRequest), "validatedPassword")
	}
}

// UpsertQuiz validates quiz content. Every question needs exactly one correct option.
func UpsertQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		errors := make(map[string]string)
		for i, q := range reqData.Questions {
			correct := 0
			for _, opt := range q.Options {
				if opt.IsCorrect {
					correct++
				}
			}
			if correct != 1 {
				errors[fmt.Sprintf("questions[%d].options", i)] = "Exactly one option must be marked correct!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}
