package adminController

import (
	"ccw/database"
	"ccw/middleware"
	"ccw/models"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetUsers lists users with pagination and optional name/email search
func GetUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.User{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetUserDetail returns one user with their orders, enrollments, attempts
// and certificates
func GetUserDetail(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil || userID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	user.Password = ""

	var orders []models.Order
	db.Where("user_id = ?", userID).Order("created_at desc").Find(&orders)

	var enrollments []models.Enrollment
	db.Where("user_id = ?", userID).Order("created_at desc").Find(&enrollments)

	var attempts []models.QuizAttempt
	db.Where("user_id = ?", userID).Order("created_at desc").Find(&attempts)

	var certificates []models.Certificate
	db.Where("user_id = ?", userID).Order("issued_at desc").Find(&certificates)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", fiber.Map{
		"user":         user,
		"orders":       orders,
		"enrollments":  enrollments,
		"attempts":     attempts,
		"certificates": certificates,
	})
}

// ToggleUserStatus suspends or reactivates an account
func ToggleUserStatus(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedToggle").(*struct {
		UserID   uint `json:"userId"`
		IsActive bool `json:"isActive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", reqData.UserID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := db.Model(&user).Update("is_active", reqData.IsActive).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user status!", nil)
	}

	message := "User suspended successfully!"
	if reqData.IsActive {
		message = "User activated successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, nil)
}
