package quizRoutes

import (
	quizController "ccw/controllers/quiz"
	"ccw/middleware"
	courseValidator "ccw/validators/course"
	quizValidator "ccw/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

func SetupQuizRoutes(app *fiber.App) {
	// The quiz lives under its course
	courseGroup := app.Group("/course", middleware.JWTMiddleware, middleware.RequireUser)
	courseGroup.Get("/:id/quiz", courseValidator.CourseID(), quizController.GetQuiz)
	courseGroup.Post("/:id/quiz/submit", courseValidator.CourseID(), quizValidator.SubmitQuiz(), quizController.SubmitQuiz)

	quizGroup := app.Group("/quiz", middleware.JWTMiddleware, middleware.RequireUser)
	quizGroup.Get("/attempt/:attemptId", quizValidator.AttemptID(), quizController.GetAttemptResults)
}
