package adminController

import (
	"ccw/database"
	"ccw/middleware"
	"ccw/models"
	adminValidator "ccw/validators/admin"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UpdateCourseSettings updates the sellable course attributes
func UpdateCourseSettings(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseSettings").(*struct {
		CourseID     uint    `json:"courseId"`
		Title        string  `json:"title"`
		Description  string  `json:"description"`
		Price        float64 `json:"price"`
		IsActive     bool    `json:"isActive"`
		PassingScore int     `json:"passingScore"`
		MaxAttempts  int     `json:"maxAttempts"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", reqData.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := db.Model(&course).Updates(map[string]interface{}{
		"title":         reqData.Title,
		"description":   reqData.Description,
		"price":         reqData.Price,
		"is_active":     reqData.IsActive,
		"passing_score": reqData.PassingScore,
		"max_attempts":  reqData.MaxAttempts,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course settings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course settings updated successfully!", nil)
}

// GetCourseSlidesAdmin lists all slides of a course for the back office
func GetCourseSlidesAdmin(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var slides []models.CourseSlide
	if err := database.Database.Db.Where("course_id = ?", courseID).Order("slide_number asc").Find(&slides).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slides!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slides fetched successfully!", fiber.Map{
		"slides": slides,
		"total":  len(slides),
	})
}

// UpdateSlide updates one slide's content and minimum view time
func UpdateSlide(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSlide").(*struct {
		SlideID     uint   `json:"slideId"`
		Title       string `json:"title"`
		Content     string `json:"content"`
		ImageURL    string `json:"imageUrl"`
		MinViewTime int    `json:"minViewTime"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var slide models.CourseSlide
	if err := db.Where("id = ?", reqData.SlideID).First(&slide).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Slide not found!", nil)
	}

	if err := db.Model(&slide).Updates(map[string]interface{}{
		"title":         reqData.Title,
		"content":       reqData.Content,
		"image_url":     reqData.ImageURL,
		"min_view_time": reqData.MinViewTime,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update slide!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slide updated successfully!", nil)
}

// ReorderSlides applies a bulk slide-number update in one transaction
func ReorderSlides(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedReorder").(*struct {
		Updates []adminValidator.SlideOrderUpdate `json:"updates"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		for _, update := range reqData.Updates {
			if err := tx.Model(&models.CourseSlide{}).
				Where("id = ?", update.SlideID).
				Update("slide_number", update.SlideNumber).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error reordering slides: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder slides!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slides reordered successfully!", nil)
}

// GetQuizAdmin returns the quiz and all questions, correct answers included
func GetQuizAdmin(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var quiz models.Quiz
	if err := db.Where("course_id = ?", courseID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found for this course!", nil)
	}

	var questions []models.QuizQuestion
	db.Where("quiz_id = ?", quiz.ID).Order("order_index asc").Find(&questions)

	type QuestionWithAnswer struct {
		models.QuizQuestion
		CorrectAnswer string `json:"correct_answer"`
	}
	result := make([]QuestionWithAnswer, len(questions))
	for i, question := range questions {
		result[i] = QuestionWithAnswer{QuizQuestion: question, CorrectAnswer: question.CorrectAnswer}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": result,
	})
}

// UpdateQuizQuestion updates a question's text, options, correct answer and
// explanation
func UpdateQuizQuestion(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuestion").(*struct {
		QuestionID    uint     `json:"questionId"`
		QuestionText  string   `json:"questionText"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correctAnswer"`
		Explanation   string   `json:"explanation"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var question models.QuizQuestion
	if err := db.Where("id = ?", reqData.QuestionID).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	optionsJSON, err := json.Marshal(reqData.Options)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
	}

	if err := db.Model(&question).Updates(map[string]interface{}{
		"question_text":  reqData.QuestionText,
		"options":        datatypes.JSON(optionsJSON),
		"correct_answer": reqData.CorrectAnswer,
		"explanation":    reqData.Explanation,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", nil)
}
