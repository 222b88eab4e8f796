package authRoutes

import (
	authController "ccw/controllers/auth"
	"ccw/middleware"
	authValidator "ccw/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Get("/verify-email", authController.VerifyEmail)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/forgot-password", authValidator.ForgotPassword(), authController.ForgotPassword)
	authGroup.Post("/reset-password", authValidator.ResetPassword(), authController.ResetPassword)
	authGroup.Get("/profile", middleware.JWTMiddleware, middleware.RequireUser, authController.GetProfile)
}
