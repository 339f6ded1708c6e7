package courseValidator

import (
	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

type SubmitQuizRequest struct {
	// question id -> selected option id
	Answers map[uint]uint `json:"answers"`
}

// SubmitQuiz validates a quiz submission body. An empty answer set is valid and grades as all wrong.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Answers == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"answers": "answers is required!"})
		}
		for questionID, optionID := range reqData.Answers {
			if questionID == 0 || optionID == 0 {
				return middleware.ValidationErrorResponse(c, map[string]string{"answers": "answers must map question ids to option ids!"})
			}
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}
