package models

import (
	"time"

	"gorm.io/gorm"
)

// PromoCode is a redeemable discount token. MaxUses nil means capless;
// ValidFrom/ValidUntil nil means no window bound on that side.
type PromoCode struct {
	gorm.Model
	Code          string     `json:"code" gorm:"uniqueIndex;not null"`
	DiscountType  string     `json:"discount_type" gorm:"default:'PERCENTAGE'"` // PERCENTAGE, FIXED
	DiscountValue float64    `json:"discount_value"`
	MaxUses       *int       `json:"max_uses"`
	UsedCount     int        `json:"used_count" gorm:"default:0"`
	ValidFrom     *time.Time `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
}
