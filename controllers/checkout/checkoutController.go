package checkoutController

import (
	"ccw/config"
	"ccw/database"
	"ccw/middleware"
	"ccw/models"
	"ccw/utils"
	checkoutValidator "ccw/validators/checkout"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// promoEligible reports whether a code can be redeemed right now: active,
// under its usage cap (or capless) and inside its validity window.
func promoEligible(promo *models.PromoCode, now time.Time) bool {
	if promo == nil || !promo.IsActive {
		return false
	}
	if promo.MaxUses != nil && promo.UsedCount >= *promo.MaxUses {
		return false
	}
	if promo.ValidFrom != nil && now.Before(*promo.ValidFrom) {
		return false
	}
	if promo.ValidUntil != nil && now.After(*promo.ValidUntil) {
		return false
	}
	return true
}

// applyDiscount computes the final price for an eligible code. PERCENTAGE
// codes multiply, FIXED codes subtract; the result is clamped at zero so a
// large fixed discount cannot produce a negative charge.
func applyDiscount(price float64, discountType string, discountValue float64) float64 {
	var finalPrice float64
	switch discountType {
	case "PERCENTAGE":
		finalPrice = price * (1 - discountValue/100)
	case "FIXED":
		finalPrice = price - discountValue
	default:
		return price
	}
	if finalPrice < 0 {
		return 0
	}
	return finalPrice
}

// toCents rounds a dollar amount to minor currency units for the payment
// provider
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateCheckout prices the course (with an optional promo code) and
// creates a hosted Stripe Checkout session. Ineligible or unknown codes
// silently fall back to full price.
func CreateCheckout(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	reqData, ok := c.Locals("validatedCheckout").(*checkoutValidator.CheckoutRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_active = ?", reqData.CourseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Re-purchase is blocked
	var existingEnrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	finalPrice := course.Price
	promoCodeID := ""
	if reqData.PromoCode != "" {
		var promo models.PromoCode
		if err := db.Where("code = ?", reqData.PromoCode).First(&promo).Error; err == nil {
			if promoEligible(&promo, time.Now()) {
				finalPrice = applyDiscount(course.Price, promo.DiscountType, promo.DiscountValue)
				promoCodeID = fmt.Sprintf("%d", promo.ID)
			}
		}
	}

	session, err := utils.CreateCheckoutSession(utils.CheckoutParams{
		CustomerEmail:   user.Email,
		ProductName:     course.Title,
		ProductDesc:     "CCW Certification Course",
		UnitAmountCents: toCents(finalPrice),
		SuccessURL:      config.AppConfig.BaseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:       config.AppConfig.BaseURL + "/courses?cancelled=true",
		Metadata: map[string]string{
			"userId":      fmt.Sprintf("%d", user.ID),
			"courseId":    fmt.Sprintf("%d", course.ID),
			"promoCodeId": promoCodeID,
		},
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create checkout session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"checkout_url": session.URL,
		"session_id":   session.ID,
	})
}

// ConfirmPayment handles the success callback. It is idempotent on the
// Stripe session id: a duplicate callback finds the existing order and
// returns without writing. First-time processing creates the order, its
// item and the enrollment and bumps the promo counter in one transaction.
func ConfirmPayment(c *fiber.Ctx) error {
	sessionID := c.Locals("stripeSessionID").(string)

	db := database.Database.Db

	// Duplicate callback delivery
	var existingOrder models.Order
	if err := db.Where("stripe_session_id = ?", sessionID).First(&existingOrder).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment already processed.", fiber.Map{
			"order_number": existingOrder.OrderNumber,
		})
	}

	session, err := utils.RetrieveCheckoutSession(sessionID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify payment!", nil)
	}

	if session.PaymentStatus != "paid" {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment was not successful. Please try again.", nil)
	}

	userID, err1 := strconv.ParseUint(session.Metadata["userId"], 10, 64)
	courseID, err2 := strconv.ParseUint(session.Metadata["courseId"], 10, 64)
	if err1 != nil || err2 != nil {
		log.Printf("Stripe session %s has invalid metadata: %v", sessionID, session.Metadata)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payment session!", nil)
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	order, err := ProcessPaidSession(db, user, course, session)
	if err != nil {
		log.Printf("Error processing paid session %s: %v", sessionID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process payment!", nil)
	}

	utils.SendEnrollmentEmail(user.Email, user.Name, course.Title, order.Total)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment successful! You are now enrolled.", fiber.Map{
		"order_number": order.OrderNumber,
		"total":        order.Total,
	})
}

// ProcessPaidSession records a confirmed payment: order + item + enrollment
// + promo usage in one transaction. The promo counter is bumped with an
// atomic increment-if-under-cap so concurrent redemptions cannot exceed the
// cap.
func ProcessPaidSession(db *gorm.DB, user models.User, course models.Course, session *utils.CheckoutSession) (*models.Order, error) {
	now := time.Now()
	total := float64(session.AmountTotal) / 100
	discount := course.Price - total
	if discount < 0 {
		discount = 0
	}

	var promoID *uint
	if raw := session.Metadata["promoCodeId"]; raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			id := uint(parsed)
			promoID = &id
		}
	}

	order := models.Order{
		UserID:          user.ID,
		OrderNumber:     utils.GenerateOrderNumber(),
		Status:          "COMPLETED",
		Subtotal:        course.Price,
		Discount:        discount,
		Total:           total,
		PaymentMethod:   "card",
		StripeSessionID: session.ID,
		StripePaymentID: session.PaymentIntent,
		PromoCodeID:     promoID,
		PaidAt:          &now,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		item := models.OrderItem{
			OrderID:   order.ID,
			CourseID:  course.ID,
			ItemName:  course.Title,
			UnitPrice: total,
			Quantity:  1,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		enrollment := models.Enrollment{
			UserID:     user.ID,
			CourseID:   course.ID,
			EnrolledAt: now,
			GrantedBy:  "PURCHASE",
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		if promoID != nil {
			if err := tx.Model(&models.PromoCode{}).
				Where("id = ? AND (max_uses IS NULL OR used_count < max_uses)", *promoID).
				Update("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}
