package courseController

import (
	"ccw/database"
	"ccw/middleware"
	"ccw/models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetAllCourses lists active courses for the public catalog
func GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Where("is_active = ?", true).Order("created_at asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// GetCourseDetails returns one active course with its content counts
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var slideCount int64
	database.Database.Db.Model(&models.CourseSlide{}).Where("course_id = ?", courseID).Count(&slideCount)

	var questionCount int64
	database.Database.Db.Model(&models.QuizQuestion{}).
		Joins("JOIN quizzes ON quizzes.id = quiz_questions.quiz_id").
		Where("quizzes.course_id = ?", courseID).
		Count(&questionCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":         course,
		"total_slides":   slideCount,
		"quiz_questions": questionCount,
	})
}

// GetCourseSlides serves the ordered slides to an enrolled user and returns
// the user's progress. The progress row is created on first access.
func GetCourseSlides(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var slides []models.CourseSlide
	if err := db.Where("course_id = ?", courseID).Order("slide_number asc").Find(&slides).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slides!", nil)
	}

	progress, err := ensureProgress(db, user.ID, uint(courseID), len(slides))
	if err != nil {
		log.Printf("Error loading progress for user %d course %d: %v", user.ID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	var viewedSlideIDs []uint
	db.Model(&models.SlideView{}).
		Joins("JOIN course_slides ON course_slides.id = slide_views.slide_id").
		Where("slide_views.user_id = ? AND course_slides.course_id = ?", user.ID, courseID).
		Pluck("slide_views.slide_id", &viewedSlideIDs)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slides fetched successfully!", fiber.Map{
		"slides":     slides,
		"progress":   progress,
		"viewed_ids": viewedSlideIDs,
	})
}

// MarkSlideViewed records a slide view (idempotent) and recomputes progress
func MarkSlideViewed(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	courseID := c.Locals("courseID").(int)
	slideID := c.Locals("slideID").(int)

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var slide models.CourseSlide
	if err := db.Where("id = ? AND course_id = ?", slideID, courseID).First(&slide).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Slide not found!", nil)
	}

	progress, err := RecordSlideView(db, user.ID, slide)
	if err != nil {
		log.Printf("Error recording slide view for user %d slide %d: %v", user.ID, slideID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark slide as viewed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slide marked as viewed!", progress)
}

// CompleteCourse marks the course completed once every slide has been
// viewed. Completion unlocks the quiz.
func CompleteCourse(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var totalSlides int64
	db.Model(&models.CourseSlide{}).Where("course_id = ?", courseID).Count(&totalSlides)

	viewed := countViewedSlides(db, user.ID, uint(courseID))
	if viewed < int(totalSlides) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please view all slides before completing the course!", fiber.Map{
			"viewed": viewed,
			"total":  totalSlides,
		})
	}

	now := time.Now()
	if err := db.Model(&models.CourseProgress{}).
		Where("user_id = ? AND course_id = ?", user.ID, courseID).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": &now,
		}).Error; err != nil {
		log.Printf("Error completing course for user %d course %d: %v", user.ID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course completed! The final exam is now unlocked.", nil)
}

// RecordSlideView inserts the view fact (no-op if it already exists) and
// recomputes the per-course progress counters.
func RecordSlideView(db *gorm.DB, userID uint, slide models.CourseSlide) (*models.CourseProgress, error) {
	view := models.SlideView{UserID: userID, SlideID: slide.ID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&view).Error; err != nil {
		return nil, err
	}

	var totalSlides int64
	db.Model(&models.CourseSlide{}).Where("course_id = ?", slide.CourseID).Count(&totalSlides)

	progress, err := ensureProgress(db, userID, slide.CourseID, int(totalSlides))
	if err != nil {
		return nil, err
	}

	// Count is scoped to this course's slides
	completed := countViewedSlides(db, userID, slide.CourseID)

	progress.CompletedSlides = completed
	progress.TotalSlides = int(totalSlides)
	progress.LastAccessedAt = time.Now()
	if slide.SlideNumber >= progress.CurrentSlide {
		progress.CurrentSlide = slide.SlideNumber
	}

	if err := db.Save(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// ensureProgress fetches the progress row, creating it on first access
func ensureProgress(db *gorm.DB, userID, courseID uint, totalSlides int) (*models.CourseProgress, error) {
	var progress models.CourseProgress
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		progress = models.CourseProgress{
			UserID:         userID,
			CourseID:       courseID,
			CurrentSlide:   1,
			TotalSlides:    totalSlides,
			LastAccessedAt: time.Now(),
		}
		if err := db.Create(&progress).Error; err != nil {
			return nil, err
		}
		return &progress, nil
	}
	if err != nil {
		return nil, err
	}

	progress.TotalSlides = totalSlides
	return &progress, nil
}

func countViewedSlides(db *gorm.DB, userID, courseID uint) int {
	var viewed int64
	db.Model(&models.SlideView{}).
		Joins("JOIN course_slides ON course_slides.id = slide_views.slide_id").
		Where("slide_views.user_id = ? AND course_slides.course_id = ?", userID, courseID).
		Count(&viewed)
	return int(viewed)
}
