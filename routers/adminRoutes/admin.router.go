package adminRoutes

import (
	adminController "ccw/controllers/admin"
	"ccw/middleware"
	adminValidator "ccw/validators/admin"
	courseValidator "ccw/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireUser, middleware.AdminOnly)

	adminGroup.Get("/dashboard", adminController.GetDashboardStats)

	adminGroup.Get("/users", adminController.GetUsers)
	adminGroup.Get("/user/:userId", adminController.GetUserDetail)
	adminGroup.Patch("/user/status", adminValidator.ToggleUserStatus(), adminController.ToggleUserStatus)

	adminGroup.Get("/orders", adminController.GetOrders)
	adminGroup.Get("/order/:orderId", adminController.GetOrderDetail)

	adminGroup.Get("/certificates", adminController.GetCertificates)
	adminGroup.Patch("/certificate/revoke", adminValidator.RevokeCertificate(), adminController.RevokeCertificate)

	adminGroup.Get("/promo-codes", adminController.GetPromoCodes)
	adminGroup.Post("/promo-code", adminValidator.CreatePromoCode(), adminController.CreatePromoCode)
	adminGroup.Patch("/promo-code/status", adminValidator.TogglePromoCode(), adminController.TogglePromoCode)

	adminGroup.Patch("/course/settings", adminValidator.UpdateCourseSettings(), adminController.UpdateCourseSettings)
	adminGroup.Get("/course/:id/slides", courseValidator.CourseID(), adminController.GetCourseSlidesAdmin)
	adminGroup.Patch("/course/slide", adminValidator.UpdateSlide(), adminController.UpdateSlide)
	adminGroup.Patch("/course/slides/reorder", adminValidator.ReorderSlides(), adminController.ReorderSlides)
	adminGroup.Get("/course/:id/quiz", courseValidator.CourseID(), adminController.GetQuizAdmin)
	adminGroup.Patch("/course/quiz/question", adminValidator.UpdateQuizQuestion(), adminController.UpdateQuizQuestion)

	adminGroup.Get("/reports/download", adminValidator.DownloadReport(), adminController.DownloadReport)
}
