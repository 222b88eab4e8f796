package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name          string     `json:"name" gorm:"default:''"`
	Email         string     `json:"email" gorm:"unique;not null"`
	Password      string     `json:"-"`
	Role          string     `json:"role" gorm:"default:'USER'"` // USER, ADMIN
	AuthProvider  string     `json:"auth_provider" gorm:"default:'EMAIL'"`
	AvatarURL     string     `json:"avatar_url"`
	EmailVerified *time.Time `json:"email_verified"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
	LastLogin     *time.Time `json:"last_login"`
}

// VerificationToken backs email verification and password reset links.
type VerificationToken struct {
	gorm.Model
	Identifier string    `json:"identifier" gorm:"index;not null"` // email the token was issued for
	Token      string    `json:"token" gorm:"uniqueIndex;not null"`
	Purpose    string    `json:"purpose" gorm:"default:'EMAIL_VERIFY'"` // EMAIL_VERIFY, PASSWORD_RESET
	Expires    time.Time `json:"expires"`
}
