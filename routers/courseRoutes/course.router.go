package courseRoutes

import (
	courseController "ccw/controllers/course"
	"ccw/middleware"
	courseValidator "ccw/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Public catalog
	courseGroup.Get("/list", courseController.GetAllCourses)
	courseGroup.Get("/:id", courseValidator.CourseID(), courseController.GetCourseDetails)

	// Enrolled-user content delivery
	courseGroup.Get("/:id/slides", middleware.JWTMiddleware, middleware.RequireUser, courseValidator.CourseID(), courseController.GetCourseSlides)
	courseGroup.Post("/:id/slide/:slideId/view", middleware.JWTMiddleware, middleware.RequireUser, courseValidator.CourseID(), courseValidator.SlideID(), courseController.MarkSlideViewed)
	courseGroup.Post("/:id/complete", middleware.JWTMiddleware, middleware.RequireUser, courseValidator.CourseID(), courseController.CompleteCourse)
}
