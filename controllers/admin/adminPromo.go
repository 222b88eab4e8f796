package adminController

import (
	"ccw/database"
	"ccw/middleware"
	"ccw/models"
	adminValidator "ccw/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// GetPromoCodes lists all promo codes
func GetPromoCodes(c *fiber.Ctx) error {
	var promoCodes []models.PromoCode
	if err := database.Database.Db.Order("created_at desc").Find(&promoCodes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch promo codes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Promo codes fetched successfully!", fiber.Map{
		"promo_codes": promoCodes,
		"total":       len(promoCodes),
	})
}

// CreatePromoCode creates a new discount code
func CreatePromoCode(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPromoCode").(*adminValidator.CreatePromoCodeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Code is unique
	if err := db.Where("code = ?", reqData.Code).First(&models.PromoCode{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Promo code already exists!", nil)
	}

	promoCode := models.PromoCode{
		Code:          reqData.Code,
		DiscountType:  reqData.DiscountType,
		DiscountValue: reqData.DiscountValue,
		MaxUses:       reqData.MaxUses,
		ValidFrom:     reqData.ValidFrom,
		ValidUntil:    reqData.ValidUntil,
		IsActive:      true,
	}

	if err := db.Create(&promoCode).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create promo code!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Promo code created successfully!", promoCode)
}

// TogglePromoCode activates or deactivates a promo code
func TogglePromoCode(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedToggle").(*struct {
		PromoCodeID uint `json:"promoCodeId"`
		IsActive    bool `json:"isActive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var promoCode models.PromoCode
	if err := db.Where("id = ?", reqData.PromoCodeID).First(&promoCode).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Promo code not found!", nil)
	}

	if err := db.Model(&promoCode).Update("is_active", reqData.IsActive).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update promo code!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Promo code updated successfully!", promoCode)
}
