package courseValidator

import (
	"ccw/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// CourseID parses and validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(c.Params("id"))
		if err != nil || courseID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// SlideID parses and validates the :slideId route parameter
func SlideID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slideID, err := strconv.Atoi(c.Params("slideId"))
		if err != nil || slideID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid slide ID!", nil)
		}

		c.Locals("slideID", slideID)
		return c.Next()
	}
}
