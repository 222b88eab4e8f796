package adminController

import (
	"bytes"
	"ccw/database"
	"ccw/middleware"
	"ccw/models"
	adminValidator "ccw/validators/admin"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// record caps per PDF section, matching the fixed-size report layout
const (
	pdfMaxOrders  = 30
	pdfMaxRecords = 50
)

// DownloadReport streams a CSV or PDF report for the requested type and
// date range
func DownloadReport(c *fiber.Ctx) error {
	query, ok := c.Locals("validatedReport").(*adminValidator.ReportQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if query.Format == "pdf" {
		pdfBytes, err := generatePDFReport(db, query)
		if err != nil {
			log.Printf("Error generating PDF report: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate report!", nil)
		}
		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-report.pdf"`, query.ReportType))
		return c.Send(pdfBytes)
	}

	var csvData string
	switch query.ReportType {
	case "revenue":
		csvData = generateRevenueCSV(db, query.StartDate, query.EndDate, query.PeriodType)
	case "orders":
		csvData = generateOrdersCSV(db, query.StartDate, query.EndDate)
	case "users":
		csvData = generateUsersCSV(db, query.StartDate, query.EndDate)
	case "enrollments":
		csvData = generateEnrollmentsCSV(db, query.StartDate, query.EndDate)
	case "certificates":
		csvData = generateCertificatesCSV(db, query.StartDate, query.EndDate)
	case "quiz":
		csvData = generateQuizCSV(db, query.StartDate, query.EndDate)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-report.csv"`, query.ReportType))
	return c.SendString(csvData)
}

// csvField quotes a user-supplied value so embedded commas, quotes or
// newlines cannot break the row
func csvField(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// periodKey buckets a timestamp for revenue grouping
func periodKey(t time.Time, periodType string) string {
	switch periodType {
	case "weekly":
		// start of week, Sunday
		weekStart := t.AddDate(0, 0, -int(t.Weekday()))
		return weekStart.Format("2006-01-02")
	case "monthly":
		return t.Format("2006-01")
	case "yearly":
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

func generateRevenueCSV(db *gorm.DB, startDate, endDate time.Time, periodType string) string {
	var orders []models.Order
	db.Where("status = ? AND paid_at BETWEEN ? AND ?", "COMPLETED", startDate, endDate).
		Order("paid_at asc").Find(&orders)

	type bucket struct {
		revenue   float64
		count     int
		discounts float64
	}
	grouped := make(map[string]*bucket)
	var keys []string

	for _, order := range orders {
		if order.PaidAt == nil {
			continue
		}
		key := periodKey(*order.PaidAt, periodType)
		b, exists := grouped[key]
		if !exists {
			b = &bucket{}
			grouped[key] = b
			keys = append(keys, key)
		}
		b.revenue += order.Total
		b.count++
		b.discounts += order.Discount
	}

	var csv strings.Builder
	csv.WriteString("Period,Revenue,Orders,Avg Order Value,Discounts\n")
	for _, key := range keys {
		b := grouped[key]
		avg := b.revenue / float64(b.count)
		csv.WriteString(fmt.Sprintf("%s,%.2f,%d,%.2f,%.2f\n", key, b.revenue, b.count, avg, b.discounts))
	}
	return csv.String()
}

func generateOrdersCSV(db *gorm.DB, startDate, endDate time.Time) string {
	var orders []models.Order
	db.Where("paid_at BETWEEN ? AND ?", startDate, endDate).Order("paid_at desc").Find(&orders)

	var csv strings.Builder
	csv.WriteString("Order Number,Date,Customer Name,Customer Email,Status,Subtotal,Discount,Total,Promo Code\n")
	for _, order := range orders {
		var user models.User
		db.Where("id = ?", order.UserID).First(&user)

		promoCode := ""
		if order.PromoCodeID != nil {
			var promo models.PromoCode
			if err := db.Where("id = ?", *order.PromoCodeID).First(&promo).Error; err == nil {
				promoCode = promo.Code
			}
		}

		paidAt := ""
		if order.PaidAt != nil {
			paidAt = order.PaidAt.Format(time.RFC3339)
		}
		csv.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%.2f,%.2f,%.2f,%s\n",
			order.OrderNumber, paidAt, csvField(user.Name), csvField(user.Email), order.Status,
			order.Subtotal, order.Discount, order.Total, csvField(promoCode)))
	}
	return csv.String()
}

func generateUsersCSV(db *gorm.DB, startDate, endDate time.Time) string {
	var users []models.User
	db.Where("created_at BETWEEN ? AND ?", startDate, endDate).Order("created_at desc").Find(&users)

	var csv strings.Builder
	csv.WriteString("Name,Email,Role,Status,Email Verified,Auth Provider,Created At\n")
	for _, user := range users {
		status := "Suspended"
		if user.IsActive {
			status = "Active"
		}
		verified := "No"
		if user.EmailVerified != nil {
			verified = "Yes"
		}
		csv.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s\n",
			csvField(user.Name), csvField(user.Email), user.Role, status, verified, user.AuthProvider,
			user.CreatedAt.Format(time.RFC3339)))
	}
	return csv.String()
}

func generateEnrollmentsCSV(db *gorm.DB, startDate, endDate time.Time) string {
	var enrollments []models.Enrollment
	db.Where("enrolled_at BETWEEN ? AND ?", startDate, endDate).Order("enrolled_at desc").Find(&enrollments)

	var csv strings.Builder
	csv.WriteString("Date,User Name,User Email,Course,Granted By\n")
	for _, enrollment := range enrollments {
		var user models.User
		db.Where("id = ?", enrollment.UserID).First(&user)
		var course models.Course
		db.Where("id = ?", enrollment.CourseID).First(&course)

		csv.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s\n",
			enrollment.EnrolledAt.Format(time.RFC3339), csvField(user.Name), csvField(user.Email),
			csvField(course.Title), enrollment.GrantedBy))
	}
	return csv.String()
}

func generateCertificatesCSV(db *gorm.DB, startDate, endDate time.Time) string {
	var certificates []models.Certificate
	db.Where("issued_at BETWEEN ? AND ?", startDate, endDate).Order("issued_at desc").Find(&certificates)

	var csv strings.Builder
	csv.WriteString("Certificate Number,Issued Date,Holder Name,Email,Course,Score,Status\n")
	for _, cert := range certificates {
		var user models.User
		db.Where("id = ?", cert.UserID).First(&user)

		csv.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%d,%s\n",
			cert.CertificateNumber, cert.IssuedAt.Format(time.RFC3339), csvField(cert.FullName),
			csvField(user.Email), csvField(cert.CourseName), cert.Score, cert.Status))
	}
	return csv.String()
}

func generateQuizCSV(db *gorm.DB, startDate, endDate time.Time) string {
	var attempts []models.QuizAttempt
	db.Where("started_at BETWEEN ? AND ?", startDate, endDate).Order("started_at desc").Find(&attempts)

	var csv strings.Builder
	csv.WriteString("Date,User Name,User Email,Course,Attempt Number,Score,Passed,Total Questions,Correct Answers\n")
	for _, attempt := range attempts {
		var user models.User
		db.Where("id = ?", attempt.UserID).First(&user)

		var quiz models.Quiz
		db.Where("id = ?", attempt.QuizID).First(&quiz)
		var course models.Course
		db.Where("id = ?", quiz.CourseID).First(&course)

		passed := "No"
		if attempt.Passed {
			passed = "Yes"
		}
		csv.WriteString(fmt.Sprintf("%s,%s,%s,%s,%d,%d,%s,%d,%d\n",
			attempt.StartedAt.Format(time.RFC3339), csvField(user.Name), csvField(user.Email), csvField(course.Title),
			attempt.AttemptNumber, attempt.Score, passed, attempt.TotalQuestions, attempt.CorrectAnswers))
	}
	return csv.String()
}

// generatePDFReport builds a paginated letter-size PDF with a title block
// and per-record text lines, capped at the most recent records per section
func generatePDFReport(db *gorm.DB, query *adminValidator.ReportQuery) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(true, 50)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-30)
		pdf.SetFont("Times", "", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Generated on %s", time.Now().Format("Jan 2, 2006 15:04")), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.AddPage()

	title := strings.ToUpper(query.ReportType[:1]) + query.ReportType[1:]

	pdf.SetFont("Times", "B", 20)
	pdf.CellFormat(0, 24, "CCW Training Platform", "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "B", 16)
	pdf.CellFormat(0, 20, title+" Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "", 10)
	pdf.CellFormat(0, 14, fmt.Sprintf("Period: %s - %s",
		query.StartDate.Format("01/02/2006"), query.EndDate.Format("01/02/2006")), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	addHeading := func(text string) {
		pdf.SetFont("Times", "B", 12)
		pdf.CellFormat(0, 16, text, "", 1, "L", false, 0, "")
	}
	addLine := func(text string) {
		pdf.SetFont("Times", "", 8)
		pdf.CellFormat(0, 12, text, "", 1, "L", false, 0, "")
	}

	switch query.ReportType {
	case "revenue":
		var orders []models.Order
		db.Where("status = ? AND paid_at BETWEEN ? AND ?", "COMPLETED", query.StartDate, query.EndDate).Find(&orders)

		var totalRevenue, totalDiscounts float64
		for _, order := range orders {
			totalRevenue += order.Total
			totalDiscounts += order.Discount
		}
		avgOrder := float64(0)
		if len(orders) > 0 {
			avgOrder = totalRevenue / float64(len(orders))
		}

		addHeading("Revenue Summary")
		addLine(fmt.Sprintf("Total Orders: %d", len(orders)))
		addLine(fmt.Sprintf("Total Revenue: $%.2f", totalRevenue))
		addLine(fmt.Sprintf("Total Discounts: $%.2f", totalDiscounts))
		addLine(fmt.Sprintf("Average Order Value: $%.2f", avgOrder))

	case "orders":
		var orders []models.Order
		db.Where("paid_at BETWEEN ? AND ?", query.StartDate, query.EndDate).
			Order("paid_at desc").Limit(pdfMaxOrders).Find(&orders)

		addHeading(fmt.Sprintf("Orders (Showing %d most recent)", len(orders)))
		for _, order := range orders {
			var user models.User
			db.Where("id = ?", order.UserID).First(&user)
			paidAt := ""
			if order.PaidAt != nil {
				paidAt = order.PaidAt.Format("01/02/2006")
			}
			addLine(fmt.Sprintf("%s | %s | %s | $%.2f | %s",
				order.OrderNumber, user.Name, order.Status, order.Total, paidAt))
		}

	case "users":
		var users []models.User
		db.Where("created_at BETWEEN ? AND ?", query.StartDate, query.EndDate).
			Order("created_at desc").Limit(pdfMaxRecords).Find(&users)

		addHeading(fmt.Sprintf("New Users (%d)", len(users)))
		for _, user := range users {
			addLine(fmt.Sprintf("%s | %s | %s | %s",
				user.Name, user.Email, user.Role, user.CreatedAt.Format("01/02/2006")))
		}

	case "enrollments":
		var enrollments []models.Enrollment
		db.Where("enrolled_at BETWEEN ? AND ?", query.StartDate, query.EndDate).
			Order("enrolled_at desc").Limit(pdfMaxRecords).Find(&enrollments)

		addHeading(fmt.Sprintf("Enrollments (%d)", len(enrollments)))
		for _, enrollment := range enrollments {
			var user models.User
			db.Where("id = ?", enrollment.UserID).First(&user)
			var course models.Course
			db.Where("id = ?", enrollment.CourseID).First(&course)
			addLine(fmt.Sprintf("%s | %s | %s",
				user.Name, course.Title, enrollment.EnrolledAt.Format("01/02/2006")))
		}

	case "certificates":
		var certificates []models.Certificate
		db.Where("issued_at BETWEEN ? AND ?", query.StartDate, query.EndDate).
			Order("issued_at desc").Limit(pdfMaxRecords).Find(&certificates)

		addHeading(fmt.Sprintf("Certificates Issued (%d)", len(certificates)))
		for _, cert := range certificates {
			addLine(fmt.Sprintf("%s | %s | Score: %d%% | %s",
				cert.CertificateNumber, cert.FullName, cert.Score, cert.IssuedAt.Format("01/02/2006")))
		}

	case "quiz":
		var attempts []models.QuizAttempt
		db.Where("started_at BETWEEN ? AND ?", query.StartDate, query.EndDate).Find(&attempts)

		passed := 0
		for _, attempt := range attempts {
			if attempt.Passed {
				passed++
			}
		}
		passRate := float64(0)
		if len(attempts) > 0 {
			passRate = float64(passed) / float64(len(attempts)) * 100
		}

		addHeading("Quiz Performance Summary")
		addLine(fmt.Sprintf("Total Attempts: %d", len(attempts)))
		addLine(fmt.Sprintf("Passed: %d", passed))
		addLine(fmt.Sprintf("Pass Rate: %.1f%%", passRate))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
