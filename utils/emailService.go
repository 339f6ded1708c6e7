package utils

import (
	"errors"
	"fmt"

	"learnhub/config"
	"learnhub/database"
	"learnhub/logger"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var ErrEmailDisabled = errors.New("email sending is not configured")

// SendEmail sends a single HTML email through SendGrid.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg == nil || cfg.SendgridApiKey == "" || cfg.EmailSender == "" {
		return ErrEmailDisabled
	}

	from := mail.NewEmail("LearnHub", cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1F2937; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F2937; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.info-box { background: #FEF3C7; padding: 15px; border-radius: 4px; border-left: 4px solid #F59E0B; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>LEARNHUB</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">&copy; LearnHub. All rights reserved.</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// sendAsync sends in the background; failures are logged only.
func sendAsync(toEmail, toName, subject, title, body string) {
	go func() {
		err := SendEmail(toEmail, toName, subject, getEmailTemplate(title, body))
		switch {
		case errors.Is(err, ErrEmailDisabled):
			logger.L().Debug("email skipped", "to", toEmail, "subject", subject)
		case err != nil:
			logger.L().Error("email failed", "to", toEmail, "subject", subject, "error", err)
		default:
			logger.L().Info("email sent", "to", toEmail, "subject", subject)
		}
	}()
}

func loadUserAndCourse(userID, courseID uint) (*models.User, *courseModels.Course, error) {
	db := database.Database.Db
	if db == nil {
		return nil, nil, errors.New("database not connected")
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	var course courseModels.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return nil, nil, fmt.Errorf("load course %d: %w", courseID, err)
	}
	return &user, &course, nil
}

// NotifyEnrolled emails the learner after a new enrollment.
func NotifyEnrolled(userID, courseID uint) {
	user, course, err := loadUserAndCourse(userID, courseID)
	if err != nil {
		logger.L().Warn("enrollment email skipped", "userId", userID, "courseId", courseID, "error", err)
		return
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<p>Complete every lesson to unlock the final quiz. Score 70%% or more to earn your certificate.</p>
	`, user.Name, course.Title)
	sendAsync(user.Email, user.Name, "Enrollment Confirmed: "+course.Title, "Enrollment Successful", body)
}

// NotifyCompleted emails the learner when the course moves to COMPLETED.
func NotifyCompleted(userID, courseID uint) {
	user, course, err := loadUserAndCourse(userID, courseID)
	if err != nil {
		logger.L().Warn("completion email skipped", "userId", userID, "courseId", courseID, "error", err)
		return
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>.</p>
		<div class="info-box">Your certificate is available from your dashboard.</div>
	`, user.Name, course.Title)
	sendAsync(user.Email, user.Name, "Course Completed: "+course.Title, "Course Completed", body)
}
