package adminController

import (
	"ccw/database"
	"ccw/middleware"
	"ccw/models"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetOrders lists orders with pagination and an optional status filter
func GetOrders(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var orders []models.Order
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	type OrderWithUser struct {
		models.Order
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	result := make([]OrderWithUser, len(orders))
	for i, order := range orders {
		var user models.User
		database.Database.Db.Where("id = ?", order.UserID).First(&user)
		result[i] = OrderWithUser{
			Order:     order,
			UserName:  user.Name,
			UserEmail: user.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched successfully!", fiber.Map{
		"orders": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetOrderDetail returns one order with its items and promo code
func GetOrderDetail(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("orderId"))
	if err != nil || orderID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid order ID!", nil)
	}

	db := database.Database.Db

	var order models.Order
	if err := db.Where("id = ?", orderID).First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	var items []models.OrderItem
	db.Where("order_id = ?", order.ID).Find(&items)

	var user models.User
	db.Where("id = ?", order.UserID).First(&user)
	user.Password = ""

	data := fiber.Map{
		"order": order,
		"items": items,
		"user":  user,
	}

	if order.PromoCodeID != nil {
		var promo models.PromoCode
		if err := db.Where("id = ?", *order.PromoCodeID).First(&promo).Error; err == nil {
			data["promo_code"] = promo
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order fetched successfully!", data)
}
