package controllers

import (
	"time"

	"learnhub/database"
	"learnhub/logger"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/services"
	"learnhub/utils"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// AdminGetCourseEnrollments gets the enrolled students of a course, optionally by status
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}
	reqData := c.Locals("validatedList").(*courseValidator.ListQuery)
	page, limit, offset := utils.Pagination(reqData.Page, reqData.Limit)

	db := database.Database.Db.Model(&courseModels.Enrollment{}).Where("enrollments.course_id = ?", course.ID)
	if reqData.Status != "" {
		db = db.Where("enrollments.status = ?", reqData.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return serverError(c, "Failed to fetch enrollments!", err)
	}

	type EnrollmentWithUser struct {
		courseModels.Enrollment
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	var result []EnrollmentWithUser
	if err := db.
		Select("enrollments.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = enrollments.user_id").
		Order("enrollments.created_at desc").
		Offset(offset).Limit(limit).
		Scan(&result).Error; err != nil {
		return serverError(c, "Failed to fetch enrollments!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminDeleteEnrollment removes an enrollment so the learner is NOT_ENROLLED again.
// Lesson progress and quiz attempts are kept.
func AdminDeleteEnrollment(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(uint)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.First(&enrollment, enrollmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}
	if err := database.Database.Db.Delete(&enrollment).Error; err != nil {
		return serverError(c, "Failed to delete enrollment!", err)
	}

	logger.L().Info("enrollment deleted",
		"enrollmentId", enrollment.ID, "userId", enrollment.UserID, "courseId", enrollment.CourseID, "by", c.Locals("userId"))
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment deleted successfully!", nil)
}

// AdminGetStudentProgress shows every enrollment of one student with live lesson progress
func AdminGetStudentProgress(c *fiber.Ctx) error {
	targetUserID := c.Locals("targetUserID").(uint)
	ctx := c.UserContext()

	var student models.User
	if err := database.Database.Db.First(&student, targetUserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ?", targetUserID).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return serverError(c, "Failed to fetch enrollments!", err)
	}

	type CourseProgress struct {
		CourseID         uint       `json:"course_id"`
		Status           string     `json:"status"`
		TotalLessons     int64      `json:"total_lessons"`
		CompletedLessons int64      `json:"completed_lessons"`
		QuizUnlocked     bool       `json:"quiz_unlocked"`
		EnrolledAt       time.Time  `json:"enrolled_at"`
		CompletedAt      *time.Time `json:"completed_at"`
	}

	courseProgress := make([]CourseProgress, len(enrollments))
	for i, e := range enrollments {
		p, err := services.Learning.Progress(ctx, targetUserID, e.CourseID)
		if err != nil {
			return learningError(c, err, e.CourseID)
		}
		courseProgress[i] = CourseProgress{
			CourseID:         e.CourseID,
			Status:           e.Status,
			TotalLessons:     p.TotalLessons,
			CompletedLessons: p.CompletedLessons,
			QuizUnlocked:     p.AllCompleted(),
			EnrolledAt:       e.CreatedAt,
			CompletedAt:      e.CompletedAt,
		}
	}

	var attempts, passed int64
	database.Database.Db.Model(&courseModels.QuizAttempt{}).Where("user_id = ?", targetUserID).Count(&attempts)
	database.Database.Db.Model(&courseModels.QuizAttempt{}).Where("user_id = ? AND passed = ?", targetUserID, true).Count(&passed)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"student":         student,
		"course_progress": courseProgress,
		"quiz_summary": fiber.Map{
			"total_attempts":  attempts,
			"passed_attempts": passed,
		},
	})
}

// AdminDashboardStats returns platform counters plus today's and this week's activity
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db.WithContext(c.UserContext())

	today := now.With(time.Now().UTC()).BeginningOfDay()
	week := now.With(time.Now().UTC()).BeginningOfWeek()

	enrollments := func() *gorm.DB { return db.Model(&courseModels.Enrollment{}) }
	counters := []struct {
		key   string
		query func() *gorm.DB
	}{
		{"total_users", func() *gorm.DB { return db.Model(&models.User{}) }},
		{"total_courses", func() *gorm.DB { return db.Model(&courseModels.Course{}) }},
		{"published_courses", func() *gorm.DB { return db.Model(&courseModels.Course{}).Where("is_published = ?", true) }},
		{"total_lessons", func() *gorm.DB { return db.Model(&courseModels.Lesson{}) }},
		{"in_progress", func() *gorm.DB { return enrollments().Where("status = ?", courseModels.EnrollmentInProgress) }},
		{"completed_enrollments", func() *gorm.DB { return enrollments().Where("status = ?", courseModels.EnrollmentCompleted) }},
		{"enrolled_today", func() *gorm.DB { return enrollments().Where("created_at >= ?", today) }},
		{"enrolled_this_week", func() *gorm.DB { return enrollments().Where("created_at >= ?", week) }},
		{"completed_today", func() *gorm.DB { return enrollments().Where("completed_at >= ?", today) }},
		{"completed_this_week", func() *gorm.DB { return enrollments().Where("completed_at >= ?", week) }},
	}

	counts := make([]int64, len(counters))
	g := new(errgroup.Group)
	g.SetLimit(4)
	for i, counter := range counters {
		i, counter := i, counter
		g.Go(func() error {
			return counter.query().Count(&counts[i]).Error
		})
	}
	if err := g.Wait(); err != nil {
		return serverError(c, "Failed to fetch dashboard stats!", err)
	}

	stats := fiber.Map{}
	for i, counter := range counters {
		stats[counter.key] = counts[i]
	}

	type RecentEnrollment struct {
		UserName   string    `json:"user_name"`
		CourseName string    `json:"course_name"`
		Status     string    `json:"status"`
		EnrolledAt time.Time `json:"enrolled_at"`
	}

	var recent []RecentEnrollment
	db.Model(&courseModels.Enrollment{}).
		Select("users.name AS user_name, courses.title AS course_name, enrollments.status AS status, enrollments.created_at AS enrolled_at").
		Joins("JOIN users ON users.id = enrollments.user_id").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Order("enrollments.created_at desc").
		Limit(5).
		Scan(&recent)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"stats":              stats,
		"recent_enrollments": recent,
	})
}

// AdminReconcile runs completion reconciliation now.
func AdminReconcile(c *fiber.Ctx) error {
	n, err := services.Learning.ReconcileCompletions(c.UserContext())
	if err != nil {
		return learningError(c, err, 0)
	}
	logger.L().Info("manual reconcile", "completed", n, "by", c.Locals("userId"))
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reconciliation finished.", fiber.Map{
		"completed": n,
	})
}
