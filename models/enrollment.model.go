package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment grants a user access to a course. Created on confirmed payment.
type Enrollment struct {
	gorm.Model
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course_enrollment"`
	CourseID   uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_enrollment"`
	EnrolledAt time.Time `json:"enrolled_at"`
	GrantedBy  string    `json:"granted_by" gorm:"default:'PURCHASE'"` // PURCHASE, ADMIN
}

// CourseProgress tracks per-user slide consumption for a course
type CourseProgress struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course_progress"`
	CourseID        uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_progress"`
	CurrentSlide    int        `json:"current_slide" gorm:"default:1"`
	CompletedSlides int        `json:"completed_slides" gorm:"default:0"`
	TotalSlides     int        `json:"total_slides" gorm:"default:0"`
	IsCompleted     bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt     *time.Time `json:"completed_at"`
	LastAccessedAt  time.Time  `json:"last_accessed_at"`
}

// SlideView records that a user viewed a slide. Insertion is idempotent:
// the unique index makes re-viewing a no-op.
type SlideView struct {
	gorm.Model
	UserID  uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_slide_view"`
	SlideID uint `json:"slide_id" gorm:"not null;uniqueIndex:idx_user_slide_view"`
}
