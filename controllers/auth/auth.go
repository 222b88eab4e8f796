package authController

import (
	"ccw/config"
	"ccw/database"
	"ccw/middleware"
	"ccw/models"
	"ccw/utils"
	authValidator "ccw/validators/auth"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenValidity = 24 * time.Hour

// Register creates a local-credential account and sends the verification link
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:         reqData.Name,
		Email:        reqData.Email,
		Password:     string(hashedPassword),
		AuthProvider: "EMAIL",
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	token, err := utils.GenerateSecureToken()
	if err != nil {
		log.Printf("Error generating verification token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	verification := models.VerificationToken{
		Identifier: newUser.Email,
		Token:      token,
		Purpose:    "EMAIL_VERIFY",
		Expires:    time.Now().Add(tokenValidity),
	}
	if err := db.Create(&verification).Error; err != nil {
		log.Printf("Error saving verification token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	// Delivery failure does not block account creation
	utils.SendVerificationEmail(newUser.Email, newUser.Name, token)

	newUser.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered. Please check your email to verify your account.", newUser)
}

// VerifyEmail consumes a verification token and marks the email verified
func VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification token is required!", nil)
	}

	db := database.Database.Db

	var verification models.VerificationToken
	if err := db.Where("token = ? AND purpose = ?", token, "EMAIL_VERIFY").First(&verification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invalid or expired verification link!", nil)
	}

	if verification.Expires.Before(time.Now()) {
		db.Delete(&verification)
		return middleware.JsonResponse(c, fiber.StatusGone, false, "Verification link has expired. Please register again.", nil)
	}

	now := time.Now()
	if err := db.Model(&models.User{}).Where("email = ?", verification.Identifier).
		Update("email_verified", &now).Error; err != nil {
		log.Printf("Error verifying email for %s: %v", verification.Identifier, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify email!", nil)
	}

	db.Delete(&verification)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email verified successfully. You can now log in.", nil)
}

// Login verifies credentials and issues a JWT
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if !user.IsActive {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Account suspended. Contact support.", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log in!", nil)
	}

	now := time.Now()
	db.Model(&user).Update("last_login", &now)

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// ForgotPassword issues a reset token. The response is identical whether or
// not the email exists.
func ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*struct {
		Email string `json:"email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "If that email is registered, a reset link has been sent.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process request!", nil)
	}

	token, err := utils.GenerateSecureToken()
	if err != nil {
		log.Printf("Error generating reset token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process request!", nil)
	}

	reset := models.VerificationToken{
		Identifier: user.Email,
		Token:      token,
		Purpose:    "PASSWORD_RESET",
		Expires:    time.Now().Add(tokenValidity),
	}
	if err := db.Create(&reset).Error; err != nil {
		log.Printf("Error saving reset token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process request!", nil)
	}

	utils.SendPasswordResetEmail(user.Email, user.Name, token)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "If that email is registered, a reset link has been sent.", nil)
}

// ResetPassword consumes a reset token and updates the password
func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*struct {
		Token           string `json:"token"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var reset models.VerificationToken
	if err := db.Where("token = ? AND purpose = ?", reqData.Token, "PASSWORD_RESET").First(&reset).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invalid or expired reset link!", nil)
	}

	if reset.Expires.Before(time.Now()) {
		db.Delete(&reset)
		return middleware.JsonResponse(c, fiber.StatusGone, false, "Reset link has expired. Please request a new one.", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	if err := db.Model(&models.User{}).Where("email = ?", reset.Identifier).
		Update("password", string(hashedPassword)).Error; err != nil {
		log.Printf("Error updating password for %s: %v", reset.Identifier, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	db.Delete(&reset)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully. You can now log in.", nil)
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}
