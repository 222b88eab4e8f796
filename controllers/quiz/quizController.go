package quizController

import (
	certificateController "ccw/controllers/certificate"
	"ccw/database"
	"ccw/middleware"
	"ccw/models"
	"ccw/utils"
	quizValidator "ccw/validators/quiz"
	"errors"
	"log"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const defaultPassingScore = 80

// GradeResult is the outcome of scoring one submission
type GradeResult struct {
	CorrectCount    int
	TotalQuestions  int
	Score           int
	Passed          bool
	QuestionResults map[uint]bool
}

// gradeSubmission scores a full answer set against the question list.
// An unanswered question counts as incorrect; scoring is plain string
// equality with no partial credit.
func gradeSubmission(questions []models.QuizQuestion, answers map[uint]string, passingScore int) GradeResult {
	if passingScore <= 0 {
		passingScore = defaultPassingScore
	}

	result := GradeResult{
		TotalQuestions:  len(questions),
		QuestionResults: make(map[uint]bool, len(questions)),
	}

	for _, question := range questions {
		isCorrect := answers[question.ID] == question.CorrectAnswer
		result.QuestionResults[question.ID] = isCorrect
		if isCorrect {
			result.CorrectCount++
		}
	}

	if result.TotalQuestions > 0 {
		result.Score = int(math.Round(float64(result.CorrectCount) / float64(result.TotalQuestions) * 100))
	}
	result.Passed = result.Score >= passingScore

	return result
}

// nextAttemptNumber computes max(existing)+1 for the user and quiz
func nextAttemptNumber(db *gorm.DB, userID, quizID uint) (int, error) {
	var lastAttempt models.QuizAttempt
	err := db.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempt_number desc").
		First(&lastAttempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return lastAttempt.AttemptNumber + 1, nil
}

// GetQuiz serves the quiz questions to an enrolled user who has completed
// the course and has attempts remaining. Correct answers are not included.
func GetQuiz(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var progress models.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ? AND is_completed = ?", user.ID, courseID, true).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete all course slides before taking the quiz!", nil)
	}

	var quiz models.Quiz
	if err := db.Where("course_id = ?", courseID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found for this course!", nil)
	}

	var attempts []models.QuizAttempt
	db.Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).Order("attempt_number asc").Find(&attempts)

	if len(attempts) >= course.MaxAttempts {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You have used all quiz attempts. Please contact support.", fiber.Map{
			"attempts_used": len(attempts),
			"max_attempts":  course.MaxAttempts,
		})
	}

	var questions []models.QuizQuestion
	db.Where("quiz_id = ?", quiz.ID).Order("order_index asc").Find(&questions)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":          quiz,
		"questions":     questions,
		"attempts":      attempts,
		"attempts_used": len(attempts),
		"max_attempts":  course.MaxAttempts,
		"passing_score": course.PassingScore,
	})
}

// SubmitQuiz grades a full answer set. The attempt, its answers and (on a
// pass) the certificate are created in one transaction so a mid-sequence
// failure leaves nothing behind.
func SubmitQuiz(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedSubmission").(*quizValidator.SubmitQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var progress models.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ? AND is_completed = ?", user.ID, courseID, true).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete all course slides before taking the quiz!", nil)
	}

	var quiz models.Quiz
	if err := db.Where("course_id = ?", courseID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found for this course!", nil)
	}

	var questions []models.QuizQuestion
	if err := db.Where("quiz_id = ?", quiz.ID).Order("order_index asc").Find(&questions).Error; err != nil || len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Quiz has no questions!", nil)
	}

	grade := gradeSubmission(questions, reqData.Answers, course.PassingScore)

	var attempt models.QuizAttempt
	var certificate *models.Certificate

	err := db.Transaction(func(tx *gorm.DB) error {
		// Re-check the cap inside the transaction so concurrent
		// submissions cannot exceed it
		var attemptCount int64
		if err := tx.Model(&models.QuizAttempt{}).
			Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).
			Count(&attemptCount).Error; err != nil {
			return err
		}
		if int(attemptCount) >= course.MaxAttempts {
			return errAttemptsExhausted
		}

		attemptNumber, err := nextAttemptNumber(tx, user.ID, quiz.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		attempt = models.QuizAttempt{
			UserID:         user.ID,
			QuizID:         quiz.ID,
			AttemptNumber:  attemptNumber,
			Status:         "COMPLETED",
			Score:          grade.Score,
			TotalQuestions: grade.TotalQuestions,
			CorrectAnswers: grade.CorrectCount,
			Passed:         grade.Passed,
			StartedAt:      now,
			CompletedAt:    now,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		answers := make([]models.QuizAnswer, 0, len(questions))
		for _, question := range questions {
			answers = append(answers, models.QuizAnswer{
				AttemptID:      attempt.ID,
				QuestionID:     question.ID,
				SelectedAnswer: reqData.Answers[question.ID],
				IsCorrect:      grade.QuestionResults[question.ID],
			})
		}
		if err := tx.Create(&answers).Error; err != nil {
			return err
		}

		if grade.Passed {
			issued, err := certificateController.IssueCertificate(tx, user, course, attempt)
			if err != nil {
				return err
			}
			certificate = issued
		}

		return nil
	})
	if err == errAttemptsExhausted {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You have used all quiz attempts. Please contact support.", nil)
	}
	if err != nil {
		log.Printf("Error submitting quiz for user %d quiz %d: %v", user.ID, quiz.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	data := fiber.Map{
		"attempt_id":      attempt.ID,
		"attempt_number":  attempt.AttemptNumber,
		"score":           attempt.Score,
		"correct_answers": attempt.CorrectAnswers,
		"total_questions": attempt.TotalQuestions,
		"passed":          attempt.Passed,
	}
	if certificate != nil {
		data["certificate_number"] = certificate.CertificateNumber
		utils.SendCertificateEmail(user.Email, user.Name, course.Title, certificate.CertificateNumber)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", data)
}

// GetAttemptResults returns one of the user's own attempts with
// per-question results and explanations
func GetAttemptResults(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	attemptID := c.Locals("attemptID").(int)

	db := database.Database.Db

	var attempt models.QuizAttempt
	if err := db.Where("id = ? AND user_id = ?", attemptID, user.ID).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	var answers []models.QuizAnswer
	db.Where("attempt_id = ?", attempt.ID).Find(&answers)

	type AnswerWithQuestion struct {
		models.QuizAnswer
		QuestionText  string `json:"question_text"`
		CorrectAnswer string `json:"correct_answer"`
		Explanation   string `json:"explanation"`
	}

	result := make([]AnswerWithQuestion, len(answers))
	for i, answer := range answers {
		var question models.QuizQuestion
		db.Where("id = ?", answer.QuestionID).First(&question)
		result[i] = AnswerWithQuestion{
			QuizAnswer:    answer,
			QuestionText:  question.QuestionText,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt results fetched successfully!", fiber.Map{
		"attempt": attempt,
		"answers": result,
	})
}
