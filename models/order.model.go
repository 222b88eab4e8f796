package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a purchase record. StripeSessionID is unique so a duplicate
// payment callback cannot create a second order for the same session.
type Order struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"index;not null"`
	OrderNumber     string     `json:"order_number" gorm:"uniqueIndex;not null"`
	Status          string     `json:"status" gorm:"default:'PENDING'"` // PENDING, COMPLETED, REFUNDED
	Subtotal        float64    `json:"subtotal"`
	Discount        float64    `json:"discount"`
	Total           float64    `json:"total"`
	PaymentMethod   string     `json:"payment_method" gorm:"default:'card'"`
	StripeSessionID string     `json:"stripe_session_id" gorm:"uniqueIndex"`
	StripePaymentID string     `json:"stripe_payment_id"`
	PromoCodeID     *uint      `json:"promo_code_id"`
	PaidAt          *time.Time `json:"paid_at"`
}

type OrderItem struct {
	gorm.Model
	OrderID   uint    `json:"order_id" gorm:"index;not null"`
	CourseID  uint    `json:"course_id" gorm:"index;not null"`
	ItemName  string  `json:"item_name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity" gorm:"default:1"`
}
