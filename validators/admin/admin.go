package adminValidator

import (
	"ccw/middleware"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type CreatePromoCodeRequest struct {
	Code          string     `json:"code" validate:"required,min=3,max=32"`
	DiscountType  string     `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue float64    `json:"discountValue" validate:"required,gt=0"`
	MaxUses       *int       `json:"maxUses"`
	ValidFrom     *time.Time `json:"validFrom"`
	ValidUntil    *time.Time `json:"validUntil"`
}

func CreatePromoCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreatePromoCodeRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Code":
					errors["code"] = "Code must be 3-32 characters!"
				case "DiscountType":
					errors["discountType"] = "Discount type must be PERCENTAGE or FIXED!"
				case "DiscountValue":
					errors["discountValue"] = "Discount value must be greater than 0!"
				}
			}
		}

		if reqData.DiscountType == "PERCENTAGE" && reqData.DiscountValue > 100 {
			errors["discountValue"] = "Percentage discount cannot exceed 100!"
		}
		if reqData.MaxUses != nil && *reqData.MaxUses < 1 {
			errors["maxUses"] = "Max uses must be at least 1!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPromoCode", reqData)
		return c.Next()
	}
}

func TogglePromoCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PromoCodeID uint `json:"promoCodeId"`
			IsActive    bool `json:"isActive"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.PromoCodeID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"promoCodeId": "Promo code ID is required!"})
		}

		c.Locals("validatedToggle", reqData)
		return c.Next()
	}
}

func RevokeCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CertificateID uint   `json:"certificateId"`
			Reason        string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.CertificateID == 0 {
			errors["certificateId"] = "Certificate ID is required!"
		}
		if strings.TrimSpace(reqData.Reason) == "" {
			errors["reason"] = "Revocation reason is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRevoke", reqData)
		return c.Next()
	}
}

func ToggleUserStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID   uint `json:"userId"`
			IsActive bool `json:"isActive"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.UserID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"userId": "User ID is required!"})
		}

		c.Locals("validatedToggle", reqData)
		return c.Next()
	}
}

func UpdateCourseSettings() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID     uint    `json:"courseId"`
			Title        string  `json:"title"`
			Description  string  `json:"description"`
			Price        float64 `json:"price"`
			IsActive     bool    `json:"isActive"`
			PassingScore int     `json:"passingScore"`
			MaxAttempts  int     `json:"maxAttempts"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.PassingScore < 1 || reqData.PassingScore > 100 {
			errors["passingScore"] = "Passing score must be between 1 and 100!"
		}
		if reqData.MaxAttempts < 1 {
			errors["maxAttempts"] = "Max attempts must be at least 1!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseSettings", reqData)
		return c.Next()
	}
}

func UpdateSlide() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SlideID     uint   `json:"slideId"`
			Title       string `json:"title"`
			Content     string `json:"content"`
			ImageURL    string `json:"imageUrl"`
			MinViewTime int    `json:"minViewTime"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.SlideID == 0 {
			errors["slideId"] = "Slide ID is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.MinViewTime < 0 {
			errors["minViewTime"] = "Minimum view time cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSlide", reqData)
		return c.Next()
	}
}

type SlideOrderUpdate struct {
	SlideID     uint `json:"slideId"`
	SlideNumber int  `json:"slideNumber"`
}

func ReorderSlides() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Updates []SlideOrderUpdate `json:"updates"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Updates) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"updates": "At least one slide update is required!"})
		}

		for _, update := range reqData.Updates {
			if update.SlideID == 0 || update.SlideNumber < 1 {
				return middleware.ValidationErrorResponse(c, map[string]string{"updates": "Each update needs a slide ID and a positive slide number!"})
			}
		}

		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}

func UpdateQuizQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionID    uint     `json:"questionId"`
			QuestionText  string   `json:"questionText"`
			Options       []string `json:"options"`
			CorrectAnswer string   `json:"correctAnswer"`
			Explanation   string   `json:"explanation"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.QuestionID == 0 {
			errors["questionId"] = "Question ID is required!"
		}
		if strings.TrimSpace(reqData.QuestionText) == "" {
			errors["questionText"] = "Question text is required!"
		}
		if len(reqData.Options) < 2 {
			errors["options"] = "At least two options are required!"
		}
		correctFound := false
		for _, option := range reqData.Options {
			if option == reqData.CorrectAnswer {
				correctFound = true
				break
			}
		}
		if !correctFound {
			errors["correctAnswer"] = "Correct answer must be one of the options!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

type ReportQuery struct {
	ReportType string    `json:"reportType"`
	PeriodType string    `json:"periodType"`
	Format     string    `json:"format"`
	StartDate  time.Time `json:"-"`
	EndDate    time.Time `json:"-"`
}

func DownloadReport() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := &ReportQuery{
			ReportType: c.Query("reportType", "revenue"),
			PeriodType: c.Query("periodType", "daily"),
			Format:     c.Query("format", "csv"),
		}

		errors := make(map[string]string)

		switch query.ReportType {
		case "revenue", "orders", "users", "enrollments", "certificates", "quiz":
		default:
			errors["reportType"] = "Invalid report type!"
		}
		switch query.PeriodType {
		case "daily", "weekly", "monthly", "yearly":
		default:
			errors["periodType"] = "Invalid period type!"
		}
		switch query.Format {
		case "csv", "pdf":
		default:
			errors["format"] = "Format must be csv or pdf!"
		}

		startDate, err := time.Parse("2006-01-02", c.Query("startDate"))
		if err != nil {
			errors["startDate"] = "Start date must be YYYY-MM-DD!"
		}
		endDate, err := time.Parse("2006-01-02", c.Query("endDate"))
		if err != nil {
			errors["endDate"] = "End date must be YYYY-MM-DD!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Include the whole end day
		query.StartDate = startDate
		query.EndDate = endDate.Add(24*time.Hour - time.Second)

		c.Locals("validatedReport", query)
		return c.Next()
	}
}
