package models

import "gorm.io/gorm"

// Course is the sellable certification course
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description" gorm:"type:text"`
	Price        float64 `json:"price" gorm:"default:0"`
	Duration     int     `json:"duration" gorm:"default:0"` // estimated minutes
	PassingScore int     `json:"passing_score" gorm:"default:80"`
	MaxAttempts  int     `json:"max_attempts" gorm:"default:3"`
	IsActive     bool    `json:"is_active" gorm:"default:true"`
}

// CourseSlide is an ordered content unit of a course. SlideNumber defines
// the sequence and is unique within a course.
type CourseSlide struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_course_slide_number"`
	SlideNumber int    `json:"slide_number" gorm:"not null;uniqueIndex:idx_course_slide_number"`
	Title       string `json:"title"`
	Content     string `json:"content" gorm:"type:text"`
	ImageURL    string `json:"image_url"`
	MinViewTime int    `json:"min_view_time" gorm:"default:10"` // seconds, enforced by the client
}
