package quizValidator

import (
	"ccw/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type SubmitQuizRequest struct {
	// question ID -> selected answer text; unanswered questions may be
	// omitted and are graded as incorrect
	Answers map[uint]string `json:"answers"`
}

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitQuizRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Answers == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"answers": "Answers object is required!",
			})
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}

// AttemptID parses and validates the :attemptId route parameter
func AttemptID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		attemptID, err := strconv.Atoi(c.Params("attemptId"))
		if err != nil || attemptID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt ID!", nil)
		}

		c.Locals("attemptID", attemptID)
		return c.Next()
	}
}
