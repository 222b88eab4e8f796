package adminController

import (
	"ccw/database"
	"ccw/middleware"
	"ccw/models"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetCertificates lists issued certificates with pagination and an
// optional status filter
func GetCertificates(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Certificate{})

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var certificates []models.Certificate
	if err := db.Offset(offset).Limit(limit).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// RevokeCertificate revokes an ACTIVE certificate. Revocation is one-way;
// there is no re-activation path.
func RevokeCertificate(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRevoke").(*struct {
		CertificateID uint   `json:"certificateId"`
		Reason        string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var certificate models.Certificate
	if err := db.Where("id = ?", reqData.CertificateID).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if certificate.Status == "REVOKED" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate is already revoked!", nil)
	}

	now := time.Now()
	if err := db.Model(&certificate).Updates(map[string]interface{}{
		"status":         "REVOKED",
		"revoked_at":     &now,
		"revoked_reason": strings.TrimSpace(reqData.Reason),
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate revoked successfully!", nil)
}
