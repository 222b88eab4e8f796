package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz is the final exam of a course, one per course
type Quiz struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"uniqueIndex;not null"`
	Title        string `json:"title"`
	PassingScore int    `json:"passing_score" gorm:"default:80"`
}

type QuizQuestion struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	QuestionText  string         `json:"question_text" gorm:"type:text"`
	Options       datatypes.JSON `json:"options"` // ordered array of answer strings
	CorrectAnswer string         `json:"-"`
	Explanation   string         `json:"explanation" gorm:"type:text"`
	Points        int            `json:"points" gorm:"default:1"` // present in shape, unweighted in scoring
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
}

// QuizAttempt is one grading event, immutable once created.
// AttemptNumber starts at 1 and strictly increases per (user, quiz).
type QuizAttempt struct {
	gorm.Model
	UserID         uint      `json:"user_id" gorm:"index;not null"`
	QuizID         uint      `json:"quiz_id" gorm:"index;not null"`
	AttemptNumber  int       `json:"attempt_number" gorm:"not null"`
	Status         string    `json:"status" gorm:"default:'COMPLETED'"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	Passed         bool      `json:"passed" gorm:"default:false"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
}

// QuizAnswer is one answer per question per attempt, created alongside the attempt
type QuizAnswer struct {
	gorm.Model
	AttemptID      uint   `json:"attempt_id" gorm:"index;not null"`
	QuestionID     uint   `json:"question_id" gorm:"index;not null"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct" gorm:"default:false"`
}
