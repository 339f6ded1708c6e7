package courseValidator

import (
	"net/url"
	"strings"

	"learnhub/middleware"
	"learnhub/validators"

	"github.com/gofiber/fiber/v2"
)

type ListQuery struct {
	Page     int    `query:"page" json:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
	Category string `query:"category" json:"category" validate:"omitempty,max=100"`
	Search   string `query:"search" json:"search" validate:"omitempty,max=100"`
	Status   string `query:"status" json:"status" validate:"omitempty,oneof=IN_PROGRESS COMPLETED"`
}

// CourseList validates catalog and admin list queries.
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		reqData.Category = strings.TrimSpace(reqData.Category)
		reqData.Search = strings.TrimSpace(reqData.Search)
		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// CategoryParam narrows a validated list query to the :name route parameter.
func CategoryParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("name"))
		name = strings.TrimSpace(name)
		if err != nil || name == "" || len(name) > 100 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category!", nil)
		}

		reqData := c.Locals("validatedList").(*ListQuery)
		reqData.Category = name
		return c.Next()
	}
}

// IDParam validates a positive integer route parameter and stores it in Locals under key.
func IDParam(param, key, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := validators.ParamID(c, param)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		}
		c.Locals(key, id)
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return IDParam("id", "courseID", "Course ID")
}

func LessonID() fiber.Handler {
	return IDParam("id", "lessonID", "Lesson ID")
}

func QuizID() fiber.Handler {
	return IDParam("id", "quizID", "Quiz ID")
}

func AttemptID() fiber.Handler {
	return IDParam("attemptId", "attemptID", "Attempt ID")
}

func UserID() fiber.Handler {
	return IDParam("id", "targetUserID", "User ID")
}

func EnrollmentID() fiber.Handler {
	return IDParam("id", "enrollmentID", "Enrollment ID")
}
