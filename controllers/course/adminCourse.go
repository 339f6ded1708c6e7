package controllers

import (
	"learnhub/database"
	"learnhub/logger"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	"learnhub/utils"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const thumbnailDir = "./public/uploads"

func findCourse(c *fiber.Ctx) (*courseModels.Course, error) {
	courseID := c.Locals("courseID").(uint)
	var course courseModels.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	return &course, nil
}

// AdminCreateCourse creates a new course
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourse").(*courseValidator.CourseRequest)

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Category:     reqData.Category,
		ThumbnailURL: reqData.ThumbnailURL,
		IsPublished:  reqData.IsPublished,
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		return serverError(c, "Failed to create course!", err)
	}

	logger.L().Info("course created", "courseId", course.ID, "by", c.Locals("userId"))
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates only the provided fields
func AdminUpdateCourse(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}
	reqData := c.Locals("validatedCourseUpdate").(*courseValidator.CourseUpdateRequest)

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.Category != nil {
		updates["category"] = *reqData.Category
	}
	if reqData.ThumbnailURL != nil {
		updates["thumbnail_url"] = *reqData.ThumbnailURL
	}
	if reqData.IsPublished != nil {
		updates["is_published"] = *reqData.IsPublished
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := database.Database.Db.Model(course).Updates(updates).Error; err != nil {
		return serverError(c, "Failed to update course!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse soft deletes a course and its lessons
func AdminDeleteCourse(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Delete(&courseModels.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(course).Error
	})
	if err != nil {
		return serverError(c, "Failed to delete course!", err)
	}

	logger.L().Info("course deleted", "courseId", course.ID, "by", c.Locals("userId"))
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetAllCourses lists every course, published or not
func AdminGetAllCourses(c *fiber.Ctx) error {
	reqData := c.Locals("validatedList").(*courseValidator.ListQuery)
	page, limit, offset := utils.Pagination(reqData.Page, reqData.Limit)

	db := database.Database.Db.Model(&courseModels.Course{})
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

	type courseRow struct {
		courseModels.Course
		LessonCount     int64 `json:"lesson_count"`
		EnrollmentCount int64 `json:"enrollment_count"`
	}

	var courses []courseModels.Course
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return serverError(c, "Failed to fetch courses!", err)
	}

	rows := make([]courseRow, len(courses))
	for i, course := range courses {
		rows[i] = courseRow{Course: course}
		database.Database.Db.Model(&courseModels.Lesson{}).Where("course_id = ?", course.ID).Count(&rows[i].LessonCount)
		database.Database.Db.Model(&courseModels.Enrollment{}).Where("course_id = ?", course.ID).Count(&rows[i].EnrollmentCount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": rows,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetCourseDetails returns a course with its ordered lessons and quizzes
func AdminGetCourseDetails(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}

	lessons, err := loadLessons(course.ID)
	if err != nil {
		return serverError(c, "Failed to fetch lessons!", err)
	}
	course.Lessons = lessons

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", course)
}

// AdminUploadThumbnail stores an image and points the course thumbnail at it
func AdminUploadThumbnail(c *fiber.Ctx) error {
	course, errResp := findCourse(c)
	if course == nil {
		return errResp
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"thumbnail": "thumbnail file is required!"})
	}
	if file.Size > 5<<20 {
		return middleware.ValidationErrorResponse(c, map[string]string{"thumbnail": "thumbnail must be at most 5MB!"})
	}

	name, err := utils.SaveUploadedImage(file, thumbnailDir)
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"thumbnail": err.Error()})
	}

	url := utils.GetFileURL(name)
	if err := database.Database.Db.Model(course).Update("thumbnail_url", url).Error; err != nil {
		return serverError(c, "Failed to update course!", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thumbnail uploaded successfully!", course)
}
