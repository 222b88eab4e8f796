package checkoutValidator

import (
	"ccw/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CheckoutRequest struct {
	CourseID  uint   `json:"courseId"`
	PromoCode string `json:"promoCode"`
}

func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CheckoutRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"courseId": "Course ID is required!",
			})
		}

		reqData.PromoCode = strings.ToUpper(strings.TrimSpace(reqData.PromoCode))

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}

// PaymentSuccess validates the session_id query parameter of the payment
// confirmation callback
func PaymentSuccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing session_id!", nil)
		}

		c.Locals("stripeSessionID", sessionID)
		return c.Next()
	}
}
