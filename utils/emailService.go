package utils

import (
	"ccw/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email through SendGrid. Failures are logged
// and returned; callers fire this from a goroutine so delivery never blocks
// the request.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridApiKey == "" {
		log.Printf("SendGrid not configured, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("CCW Training", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// HTML wrapper shared by all triggers
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1F2937; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F2937; line-height: 1.6; }
			.content h2 { color: #1F2937; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #1A73E8; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #1A73E8; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>CCW TRAINING</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 CCW Training. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendVerificationEmail sends the email-verification link after registration
func SendVerificationEmail(email, name, token string) {
	verificationURL := fmt.Sprintf("%s/auth/verify-email?token=%s", config.AppConfig.BaseURL, token)
	subject := "Verify your email address"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for registering with <strong>CCW Training</strong>! Please verify your email address to complete your registration.</p>
		<a href="%s" class="btn">Verify Email Address</a>
		<p style="margin-top: 30px; font-size: 14px; color: #666;">Or copy and paste this link into your browser:<br>%s</p>
		<p style="font-size: 12px; color: #999;">This verification link will expire in 24 hours. If you didn't create an account, you can safely ignore this email.</p>
	`, name, verificationURL, verificationURL)

	go SendEmail(email, name, subject, getEmailTemplate("Verify Your Email Address", body))
}

// SendPasswordResetEmail sends the password-reset link
func SendPasswordResetEmail(email, name, token string) {
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", config.AppConfig.BaseURL, token)
	subject := "Reset your password"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We received a request to reset your password.</p>
		<a href="%s" class="btn">Reset Password</a>
		<p style="font-size: 12px; color: #999;">This link will expire in 24 hours. If you did not request a reset, you can safely ignore this email.</p>
	`, name, resetURL)

	go SendEmail(email, name, subject, getEmailTemplate("Password Reset", body))
}

// SendEnrollmentEmail confirms a successful purchase and enrollment
func SendEnrollmentEmail(email, name, courseName string, total float64) {
	subject := "Enrollment Confirmed: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your payment of <strong>$%.2f</strong> was received and you are now enrolled in:</p>
		<h3 style="text-align: center; color: #1A73E8;">%s</h3>
		<div class="info-box">
			<strong>What's next?</strong> Work through the training slides, then take the final exam to earn your certificate.
		</div>
	`, name, total, courseName)

	go SendEmail(email, name, subject, getEmailTemplate("Payment Successful", body))
}

// SendCertificateEmail notifies the user that a certificate was issued
func SendCertificateEmail(email, name, courseName, certificateNumber string) {
	subject := "Your Certificate of Completion"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on passing the final exam for:</p>
		<h3 style="text-align: center; color: #1A73E8;">%s</h3>
		<div class="info-box" style="text-align: center;">
			<p style="margin-bottom: 10px;">Your Certificate Number:</p>
			<h2 style="margin: 0;">%s</h2>
		</div>
		<p>You can use this certificate number for verification purposes.</p>
	`, name, courseName, certificateNumber)

	go SendEmail(email, name, subject, getEmailTemplate("Certificate Issued", body))
}
