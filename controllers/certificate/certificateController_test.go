package certificateController

import (
	"ccw/database"
	"ccw/models"
	"net/http/httptest"
	"strings"
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

// issueInTx runs issuance inside a transaction, the way SubmitQuiz does
func issueInTx(db *gorm.DB, user models.User, course models.Course, attempt models.QuizAttempt) (*models.Certificate, error) {
	var certificate *models.Certificate
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		certificate, txErr = IssueCertificate(tx, user, course, attempt)
		return txErr
	})
	return certificate, err
}

func TestIssueCertificate(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Jane Doe", Email: "jane@example.com", Role: "USER", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "CCW Certification", Price: 39.99, PassingScore: 80}
	require.NoError(t, db.Create(&course).Error)
	attempt := models.QuizAttempt{UserID: user.ID, QuizID: 1, AttemptNumber: 1, Score: 85, Passed: true, Status: "COMPLETED"}
	require.NoError(t, db.Create(&attempt).Error)

	certificate, err := issueInTx(db, user, course, attempt)
	require.NoError(t, err)

	assert.Equal(t, "ACTIVE", certificate.Status)
	assert.Equal(t, "Jane Doe", certificate.FullName)
	assert.Equal(t, "CCW Certification", certificate.CourseName)
	assert.Equal(t, 85, certificate.Score)
	assert.Equal(t, attempt.ID, certificate.AttemptID)
	assert.True(t, strings.HasPrefix(certificate.CertificateNumber, "CCW-"))
	assert.False(t, certificate.IssuedAt.IsZero())
}

func TestIssueCertificate_EmptyNameFallback(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Email: "anon@example.com", Role: "USER", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "CCW Certification"}
	require.NoError(t, db.Create(&course).Error)
	attempt := models.QuizAttempt{UserID: user.ID, QuizID: 1, AttemptNumber: 1, Score: 90, Passed: true}
	require.NoError(t, db.Create(&attempt).Error)

	certificate, err := issueInTx(db, user, course, attempt)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", certificate.FullName)
}

func verifyApp() *fiber.App {
	app := fiber.New()
	app.Get("/certificate/verify/:number", VerifyCertificate)
	return app
}

func TestVerifyCertificate_RevokedAndUnknownAreHidden(t *testing.T) {
	db := setupTestDb(t)
	database.Database = database.DbInstance{Db: db}
	app := verifyApp()

	certificate := models.Certificate{
		UserID: 1, CourseID: 1, AttemptID: 1,
		CertificateNumber: "CCW-1-VALID01", FullName: "Jane Doe",
		CourseName: "CCW Certification", Score: 85, Status: "ACTIVE", IssuedAt: time.Now(),
	}
	require.NoError(t, db.Create(&certificate).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/certificate/verify/CCW-1-VALID01", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	now := time.Now()
	require.NoError(t, db.Model(&certificate).Updates(map[string]interface{}{
		"status":         "REVOKED",
		"revoked_at":     &now,
		"revoked_reason": "Issued in error",
	}).Error)

	// A revoked certificate is indistinguishable from an unknown one
	resp, err = app.Test(httptest.NewRequest("GET", "/certificate/verify/CCW-1-VALID01", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/certificate/verify/CCW-1-NOSUCH1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestIssueCertificate_RetriesOnNumberCollision(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Jane Doe", Email: "jane@example.com", Role: "USER", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "CCW Certification"}
	require.NoError(t, db.Create(&course).Error)
	attempt := models.QuizAttempt{UserID: user.ID, QuizID: 1, AttemptNumber: 1, Score: 85, Passed: true}
	require.NoError(t, db.Create(&attempt).Error)

	taken := models.Certificate{
		UserID: user.ID, CourseID: course.ID, AttemptID: attempt.ID,
		CertificateNumber: "CCW-1-TAKEN", FullName: "Jane Doe",
		CourseName: course.Title, Score: 85, Status: "ACTIVE", IssuedAt: time.Now(),
	}
	require.NoError(t, db.Create(&taken).Error)

	// First candidate collides with the existing number, second is fresh
	original := newCertificateNumber
	defer func() { newCertificateNumber = original }()
	calls := 0
	newCertificateNumber = func() string {
		calls++
		if calls == 1 {
			return "CCW-1-TAKEN"
		}
		return "CCW-1-FRESH"
	}

	var issued *models.Certificate
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		issued, txErr = IssueCertificate(tx, user, course, attempt)
		if txErr != nil {
			return txErr
		}
		// The collision must not have aborted the transaction
		return tx.Create(&models.QuizAnswer{AttemptID: attempt.ID, QuestionID: 1, IsCorrect: true}).Error
	})
	require.NoError(t, err)
	assert.Equal(t, "CCW-1-FRESH", issued.CertificateNumber)
	assert.Equal(t, 2, calls)
}

func TestIssueCertificate_NumbersAreUnique(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Jane Doe", Email: "jane@example.com", Role: "USER", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "CCW Certification"}
	require.NoError(t, db.Create(&course).Error)

	seen := make(map[string]bool)
	for i := 1; i <= 5; i++ {
		attempt := models.QuizAttempt{UserID: user.ID, QuizID: 1, AttemptNumber: i, Score: 85, Passed: true}
		require.NoError(t, db.Create(&attempt).Error)

		certificate, err := issueInTx(db, user, course, attempt)
		require.NoError(t, err)
		assert.False(t, seen[certificate.CertificateNumber])
		seen[certificate.CertificateNumber] = true
	}
}
