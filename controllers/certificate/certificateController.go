package certificateController

import (
	"ccw/database"
	"ccw/middleware"
	"ccw/models"
	"ccw/utils"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// issuance retries a handful of times on a certificate-number collision;
// the unique index is the arbiter
const maxNumberRetries = 5

// seam for collision tests
var newCertificateNumber = utils.GenerateCertificateNumber

// IssueCertificate creates the certificate for a passing attempt,
// snapshotting holder name, course title and score. Runs inside the
// caller's transaction; each insert attempt sits behind a savepoint so a
// number collision does not poison the enclosing transaction.
func IssueCertificate(tx *gorm.DB, user models.User, course models.Course, attempt models.QuizAttempt) (*models.Certificate, error) {
	fullName := user.Name
	if fullName == "" {
		fullName = "Unknown"
	}

	var lastErr error
	for i := 0; i < maxNumberRetries; i++ {
		certificate := models.Certificate{
			UserID:            user.ID,
			CourseID:          course.ID,
			AttemptID:         attempt.ID,
			CertificateNumber: newCertificateNumber(),
			FullName:          fullName,
			CourseName:        course.Title,
			Score:             attempt.Score,
			Status:            "ACTIVE",
			IssuedAt:          time.Now(),
		}

		if err := tx.SavePoint("cert_issue").Error; err != nil {
			return nil, err
		}
		err := tx.Create(&certificate).Error
		if err == nil {
			return &certificate, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		if err := tx.RollbackTo("cert_issue").Error; err != nil {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// VerifyCertificate resolves a certificate number publicly. Revoked and
// unknown numbers both report not-found so the revocation reason is never
// disclosed to anonymous callers.
func VerifyCertificate(c *fiber.Ctx) error {
	certificateNumber := c.Params("number")
	if certificateNumber == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate number is required!", nil)
	}

	var certificate models.Certificate
	err := database.Database.Db.
		Where("certificate_number = ? AND status = ?", certificateNumber, "ACTIVE").
		First(&certificate).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found or no longer valid.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid.", fiber.Map{
		"certificate_number": certificate.CertificateNumber,
		"full_name":          certificate.FullName,
		"course_name":        certificate.CourseName,
		"score":              certificate.Score,
		"issued_at":          certificate.IssuedAt,
	})
}

// GetUserCertificates lists the authenticated user's certificates
func GetUserCertificates(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var certificates []models.Certificate
	if err := database.Database.Db.
		Where("user_id = ?", user.ID).
		Order("issued_at desc").
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}
