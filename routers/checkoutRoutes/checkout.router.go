package checkoutRoutes

import (
	checkoutController "ccw/controllers/checkout"
	"ccw/middleware"
	checkoutValidator "ccw/validators/checkout"

	"github.com/gofiber/fiber/v2"
)

func SetupCheckoutRoutes(app *fiber.App) {
	checkoutGroup := app.Group("/checkout")

	checkoutGroup.Post("/", middleware.JWTMiddleware, middleware.RequireUser, checkoutValidator.Checkout(), checkoutController.CreateCheckout)

	// Stripe redirects the browser here after payment; the session id in
	// the query string is the only credential
	checkoutGroup.Get("/success", checkoutValidator.PaymentSuccess(), checkoutController.ConfirmPayment)
}
