package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/services"
	"learnhub/services/learning"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
)

// certificateFor builds the printable data from the source attempt.
func certificateFor(attempt *courseModels.QuizAttempt) (*utils.CertificateData, error) {
	db := database.Database.Db

	var user models.User
	if err := db.Unscoped().Select("id", "name").First(&user, attempt.UserID).Error; err != nil {
		return nil, err
	}

	var courseTitle string
	err := db.Table("quizzes").
		Select("courses.title").
		Joins("JOIN lessons ON lessons.id = quizzes.lesson_id").
		Joins("JOIN courses ON courses.id = lessons.course_id").
		Where("quizzes.id = ?", attempt.QuizID).
		Limit(1).
		Scan(&courseTitle).Error
	if err != nil {
		return nil, err
	}

	return &utils.CertificateData{
		LearnerName:       user.Name,
		CourseTitle:       courseTitle,
		CompletedAt:       attempt.CreatedAt,
		CertificateNumber: learning.CertificateNumber(attempt),
	}, nil
}

// GetCertificate reports eligibility for the quiz's certificate and, when eligible, its data.
// The certificate always comes from the most recent passing attempt.
func GetCertificate(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(uint)

	elig, err := services.Learning.GetCertificateEligibility(c.UserContext(), userID, quizID)
	if err != nil {
		return learningError(c, err, 0)
	}
	if !elig.Eligible {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate not earned yet.", fiber.Map{
			"eligible": false,
		})
	}

	cert, err := certificateFor(elig.Attempt)
	if err != nil {
		return serverError(c, "Failed to build certificate!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"eligible":    true,
		"attempt_id":  elig.AttemptID(),
		"percentage":  elig.Attempt.Percentage,
		"certificate": cert,
	})
}

// GetCertificateImage renders the certificate through the external renderer.
func GetCertificateImage(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(uint)

	elig, err := services.Learning.GetCertificateEligibility(c.UserContext(), userID, quizID)
	if err != nil {
		return learningError(c, err, 0)
	}
	if !elig.Eligible {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found or not earned!", nil)
	}

	cert, err := certificateFor(elig.Attempt)
	if err != nil {
		return serverError(c, "Failed to build certificate!", err)
	}

	img, err := utils.RenderCertificateImage(c.UserContext(), *cert)
	if err != nil {
		return serverError(c, "Failed to generate certificate image!", err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="certificate-`+cert.CertificateNumber+`.png"`)
	return c.Status(fiber.StatusOK).Send(img)
}
