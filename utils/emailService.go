package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"tashil/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" {
		fmt.Printf("--- Email skipped (sender not configured) ---\nTo: %v\nSubject: %s\n", to, subject)
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Tashil Portal <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all portal mails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #0B3D2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A1A; line-height: 1.6; }
			.content h2 { color: #0B3D2E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F5EE; padding: 15px; border-radius: 4px; border-left: 4px solid #2E8B57; margin: 20px 0; }
			.status-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; color: white; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>TASHIL PORTAL</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Tashil Portal. All rights reserved.<br>
				This is an automated message, please do not reply.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / account created
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Tashil Portal"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Tashil Portal</strong>! Your account has been created successfully.</p>
		<p>You can now submit employee and company registration requests and track their progress from your dashboard.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Request submitted (to applicant)
func SendRequestSubmittedEmail(email, name, requestNumber string) {
	subject := "Request Submitted: " + requestNumber
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your registration request <strong>%s</strong> has been submitted.</p>
		<p>Status: <span class="status-badge" style="background-color: #FFC107;">PENDING</span></p>
		<p>You will receive an email once it is reviewed.</p>
	`, name, requestNumber)

	go SendEmail([]string{email}, subject, getEmailTemplate("Request Submitted", body))
}

// 3. Request approved (to applicant)
func SendRequestApprovedEmail(email, name, requestNumber string) {
	subject := "Request Approved: " + requestNumber
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Good news! Your registration request <strong>%s</strong> has been <strong>APPROVED</strong>.</p>
		<div class="info-box">
			A digital ID will be issued for this registration. You will be notified when it is ready for printing and collection.
		</div>
	`, name, requestNumber)

	go SendEmail([]string{email}, subject, getEmailTemplate("Request Approved", body))
}

// 4. Request rejected (to applicant)
func SendRequestRejectedEmail(email, name, requestNumber, reason string) {
	subject := "Request Rejected: " + requestNumber
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Unfortunately, your registration request <strong>%s</strong> was rejected.</p>
		<div style="color: #dc3545; font-weight: bold;">Reason: %s</div>
		<p>Please correct the issues above and submit a new request.</p>
	`, name, requestNumber, reason)

	go SendEmail([]string{email}, subject, getEmailTemplate("Request Rejected", body))
}

// 5. Digital ID generated (to applicant)
func SendDigitalIDReadyEmail(email, name, requestNumber string, expiry time.Time) {
	subject := "Digital ID Issued: " + requestNumber
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The digital ID for request <strong>%s</strong> has been issued.</p>
		<div class="info-box">
			<strong>Valid until:</strong> %s
		</div>
		<p>It will be available for collection once printed.</p>
	`, name, requestNumber, expiry.Format("January 2, 2006"))

	go SendEmail([]string{email}, subject, getEmailTemplate("Digital ID Issued", body))
}

// 6. ID expiry reminder (to applicant)
func SendIDExpiryReminderEmail(email, name string, expiresAt time.Time) {
	subject := "Your Digital ID is Expiring Soon"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your digital ID expires on <strong>%s</strong>.</p>
		<p>Please submit a renewal request before the expiry date to avoid interruption.</p>
	`, name, expiresAt.Format("January 2, 2006"))

	go SendEmail([]string{email}, subject, getEmailTemplate("Digital ID Expiring Soon", body))
}
