package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is issued from the passing branch of quiz grading. Holder
// name, course name and score are snapshots taken at issuance time, so
// later edits to User or Course do not alter issued certificates.
type Certificate struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"index;not null"`
	CourseID          uint       `json:"course_id" gorm:"index;not null"`
	AttemptID         uint       `json:"attempt_id" gorm:"index;not null"`
	CertificateNumber string     `json:"certificate_number" gorm:"uniqueIndex;not null"`
	FullName          string     `json:"full_name"`
	CourseName        string     `json:"course_name"`
	Score             int        `json:"score"`
	Status            string     `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, REVOKED
	IssuedAt          time.Time  `json:"issued_at"`
	RevokedAt         *time.Time `json:"revoked_at"`
	RevokedReason     string     `json:"revoked_reason"`
}
