package quizController

import (
	"ccw/config"
	"ccw/database"
	"ccw/models"
	quizValidator "ccw/validators/quiz"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	database.RunMigrations(db)
	return db
}

func makeQuestions(count int) []models.QuizQuestion {
	questions := make([]models.QuizQuestion, count)
	for i := range questions {
		questions[i] = models.QuizQuestion{
			Model:         gorm.Model{ID: uint(i + 1)},
			CorrectAnswer: fmt.Sprintf("answer-%d", i+1),
		}
	}
	return questions
}

func TestGradeSubmission(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		correct    int
		wantScore  int
		wantPassed bool
	}{
		{name: "exactly at passing score", total: 20, correct: 16, wantScore: 80, wantPassed: true},
		{name: "just below passing score", total: 20, correct: 15, wantScore: 75, wantPassed: false},
		{name: "perfect score", total: 10, correct: 10, wantScore: 100, wantPassed: true},
		{name: "all wrong", total: 10, correct: 0, wantScore: 0, wantPassed: false},
		{name: "rounds to nearest", total: 3, correct: 2, wantScore: 67, wantPassed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := makeQuestions(tt.total)
			answers := make(map[uint]string)
			for i := 0; i < tt.correct; i++ {
				answers[questions[i].ID] = questions[i].CorrectAnswer
			}
			// Remaining questions get a wrong answer or none at all
			for i := tt.correct; i < tt.total; i += 2 {
				answers[questions[i].ID] = "wrong"
			}

			result := gradeSubmission(questions, answers, 80)
			assert.Equal(t, tt.correct, result.CorrectCount)
			assert.Equal(t, tt.total, result.TotalQuestions)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantPassed, result.Passed)
		})
	}
}

func TestGradeSubmission_UnansweredCountsAsWrong(t *testing.T) {
	questions := makeQuestions(4)

	// Only answer two of four, both correct
	answers := map[uint]string{
		questions[0].ID: questions[0].CorrectAnswer,
		questions[1].ID: questions[1].CorrectAnswer,
	}

	result := gradeSubmission(questions, answers, 80)
	assert.Equal(t, 2, result.CorrectCount)
	assert.Equal(t, 50, result.Score)
	assert.False(t, result.Passed)
	assert.False(t, result.QuestionResults[questions[2].ID])
	assert.False(t, result.QuestionResults[questions[3].ID])
}

func TestGradeSubmission_EmptyQuiz(t *testing.T) {
	result := gradeSubmission(nil, map[uint]string{}, 80)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)
}

func TestGradeSubmission_DefaultPassingScore(t *testing.T) {
	questions := makeQuestions(10)
	answers := make(map[uint]string)
	for i := 0; i < 8; i++ {
		answers[questions[i].ID] = questions[i].CorrectAnswer
	}

	// Zero passing score falls back to the default of 80
	result := gradeSubmission(questions, answers, 0)
	assert.Equal(t, 80, result.Score)
	assert.True(t, result.Passed)
}

func TestNextAttemptNumber(t *testing.T) {
	db := setupTestDb(t)

	number, err := nextAttemptNumber(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, number)

	require.NoError(t, db.Create(&models.QuizAttempt{UserID: 1, QuizID: 1, AttemptNumber: 1, Status: "COMPLETED"}).Error)
	number, err = nextAttemptNumber(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, number)

	require.NoError(t, db.Create(&models.QuizAttempt{UserID: 1, QuizID: 1, AttemptNumber: 2, Status: "COMPLETED"}).Error)
	number, err = nextAttemptNumber(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, number)

	// Other users and quizzes don't interfere
	number, err = nextAttemptNumber(db, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, number)
	number, err = nextAttemptNumber(db, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, number)
}

func TestNextAttemptNumber_PropagatesDbErrors(t *testing.T) {
	db := setupTestDb(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// A query failure must not be mistaken for "no prior attempts"
	_, err = nextAttemptNumber(db, 1, 1)
	assert.Error(t, err)
}

// submitApp wires SubmitQuiz behind a stub that injects the locals the
// middleware chain would normally provide.
func submitApp(user models.User, courseID uint, answers map[uint]string) *fiber.App {
	app := fiber.New()
	app.Post("/submit", func(c *fiber.Ctx) error {
		c.Locals("user", user)
		c.Locals("courseID", int(courseID))
		c.Locals("validatedSubmission", &quizValidator.SubmitQuizRequest{Answers: answers})
		return c.Next()
	}, SubmitQuiz)
	return app
}

func TestSubmitQuiz_MaxAttemptsAndCertificate(t *testing.T) {
	db := setupTestDb(t)
	database.Database = database.DbInstance{Db: db}
	// Email sending short-circuits on the empty SendGrid key
	config.AppConfig = &config.Config{}

	user := models.User{Name: "Jane Doe", Email: "jane@example.com", Role: "USER", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "CCW Certification", Price: 39.99, PassingScore: 80, MaxAttempts: 2, IsActive: true}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&models.Enrollment{UserID: user.ID, CourseID: course.ID, EnrolledAt: time.Now(), GrantedBy: "PURCHASE"}).Error)
	now := time.Now()
	require.NoError(t, db.Create(&models.CourseProgress{UserID: user.ID, CourseID: course.ID, IsCompleted: true, CompletedAt: &now}).Error)
	quiz := models.Quiz{CourseID: course.ID, Title: "Final Exam", PassingScore: 80}
	require.NoError(t, db.Create(&quiz).Error)

	questions := make([]models.QuizQuestion, 5)
	for i := range questions {
		questions[i] = models.QuizQuestion{QuizID: quiz.ID, QuestionText: "Q", CorrectAnswer: "right", OrderIndex: i}
		require.NoError(t, db.Create(&questions[i]).Error)
	}

	failing := map[uint]string{questions[0].ID: "right"}
	passing := make(map[uint]string)
	for _, question := range questions {
		passing[question.ID] = "right"
	}

	// First attempt fails, no certificate
	resp, err := submitApp(user, course.ID, failing).Test(httptest.NewRequest("POST", "/submit", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var certCount int64
	db.Model(&models.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.Equal(t, int64(0), certCount)

	// Second attempt passes and issues exactly one certificate
	resp, err = submitApp(user, course.ID, passing).Test(httptest.NewRequest("POST", "/submit", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	db.Model(&models.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.Equal(t, int64(1), certCount)

	var attempts []models.QuizAttempt
	db.Where("user_id = ?", user.ID).Order("attempt_number asc").Find(&attempts)
	require.Len(t, attempts, 2)
	assert.Equal(t, 1, attempts[0].AttemptNumber)
	assert.Equal(t, 2, attempts[1].AttemptNumber)
	assert.False(t, attempts[0].Passed)
	assert.True(t, attempts[1].Passed)

	// Third attempt is refused, nothing is written
	resp, err = submitApp(user, course.ID, passing).Test(httptest.NewRequest("POST", "/submit", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var attemptCount int64
	db.Model(&models.QuizAttempt{}).Where("user_id = ?", user.ID).Count(&attemptCount)
	assert.Equal(t, int64(2), attemptCount)
}
