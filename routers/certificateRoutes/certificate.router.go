package certificateRoutes

import (
	certificateController "ccw/controllers/certificate"
	"ccw/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCertificateRoutes(app *fiber.App) {
	certificateGroup := app.Group("/certificate")

	// Public verification endpoint, no auth
	certificateGroup.Get("/verify/:number", certificateController.VerifyCertificate)

	userGroup := app.Group("/user")
	userGroup.Get("/certificates", middleware.JWTMiddleware, middleware.RequireUser, certificateController.GetUserCertificates)
}
