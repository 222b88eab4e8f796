package adminController

import (
	"ccw/database"
	"ccw/middleware"
	"ccw/models"

	"github.com/gofiber/fiber/v2"
)

// GetDashboardStats aggregates the numbers shown on the admin landing page
func GetDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers int64
	db.Model(&models.User{}).Count(&totalUsers)

	var totalEnrollments int64
	db.Model(&models.Enrollment{}).Count(&totalEnrollments)

	var totalCertificates int64
	db.Model(&models.Certificate{}).Where("status = ?", "ACTIVE").Count(&totalCertificates)

	var totalRevenue float64
	db.Model(&models.Order{}).Where("status = ?", "COMPLETED").
		Select("COALESCE(SUM(total), 0)").Scan(&totalRevenue)

	var totalAttempts int64
	db.Model(&models.QuizAttempt{}).Count(&totalAttempts)

	var passedAttempts int64
	db.Model(&models.QuizAttempt{}).Where("passed = ?", true).Count(&passedAttempts)

	passRate := float64(0)
	if totalAttempts > 0 {
		passRate = float64(passedAttempts) / float64(totalAttempts) * 100
	}

	var recentOrders []models.Order
	db.Where("status = ?", "COMPLETED").Order("paid_at desc").Limit(10).Find(&recentOrders)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_users":        totalUsers,
		"total_enrollments":  totalEnrollments,
		"total_certificates": totalCertificates,
		"total_revenue":      totalRevenue,
		"quiz_attempts":      totalAttempts,
		"quiz_pass_rate":     passRate,
		"recent_orders":      recentOrders,
	})
}
