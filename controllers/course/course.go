package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	"learnhub/services"
	"learnhub/utils"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

type lessonSummary struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	VideoURL   string `json:"video_url,omitempty"`
	Duration   *int   `json:"duration"`
	OrderIndex int    `json:"order_index"`
	QuizID     *uint  `json:"quiz_id,omitempty"`
	Completed  bool   `json:"completed"`
}

// loadLessons returns the course's lessons in rank order with their quiz ids.
func loadLessons(courseID uint) ([]courseModels.Lesson, error) {
	var lessons []courseModels.Lesson
	err := database.Database.Db.
		Where("course_id = ?", courseID).
		Preload("Quiz").
		Order("order_index asc, id asc").
		Find(&lessons).Error
	return lessons, err
}

func summarize(lessons []courseModels.Lesson, completed map[uint]bool, withVideo bool) ([]lessonSummary, *uint) {
	out := make([]lessonSummary, len(lessons))
	var finalQuiz *uint
	for i, l := range lessons {
		out[i] = lessonSummary{
			ID:         l.ID,
			Title:      l.Title,
			Duration:   l.Duration,
			OrderIndex: l.OrderIndex,
			Completed:  completed[l.ID],
		}
		if withVideo {
			out[i].VideoURL = l.VideoURL
		}
		if l.Quiz != nil {
			id := l.Quiz.ID
			out[i].QuizID = &id
			finalQuiz = &id
		}
	}
	return out, finalQuiz
}

// GetAllCourses lists published courses.
func GetAllCourses(c *fiber.Ctx) error {
	reqData := c.Locals("validatedList").(*courseValidator.ListQuery)
	page, limit, offset := utils.Pagination(reqData.Page, reqData.Limit)

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_published = ?", true)
	if reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	if reqData.Search != "" {
		db = db.Where("LOWER(title) LIKE LOWER(?)", "%"+reqData.Search+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return serverError(c, "Failed to fetch courses!", err)
	}

	var courses []courseModels.Course
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return serverError(c, "Failed to fetch courses!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails shows a published course. Authenticated callers also get their state.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_published = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	lessons, err := loadLessons(courseID)
	if err != nil {
		return serverError(c, "Failed to fetch lessons!", err)
	}
	summaries, quizID := summarize(lessons, nil, false)

	data := fiber.Map{
		"course":      course,
		"lessons":     summaries,
		"quiz_id":     quizID,
		"is_enrolled": false,
		"status":      courseModels.NotEnrolled,
		"quiz_locked": true,
	}

	if userID, ok := currentUserID(c); ok {
		ctx := c.UserContext()
		state, err := services.Learning.CourseState(ctx, userID, courseID)
		if err != nil {
			return learningError(c, err, courseID)
		}
		unlocked, err := services.Learning.IsQuizUnlocked(ctx, userID, courseID)
		if err != nil {
			return learningError(c, err, courseID)
		}
		data["status"] = state
		data["is_enrolled"] = state != courseModels.NotEnrolled
		data["quiz_locked"] = !unlocked
	}

	// surfaced by the client after a gate redirect
	if reason := c.Query("error"); reason == "not_enrolled" || reason == "not_completed" {
		data["error"] = reason
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", data)
}
