package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"learnhub/logger"
	courseModels "learnhub/models/course"

	"gorm.io/gorm"
)

type importStats struct {
	CoursesCreated int
	LessonsCreated int
	LessonsUpdated int
	Skipped        int
}

// importCourses reads one lesson per row. Columns: course, description,
// category, lesson, video_url, duration. Lessons keep file order inside
// each course; a lesson whose title already exists in the course is updated.
func importCourses(db *gorm.DB, r io.Reader, publish bool) (importStats, error) {
	var stats importStats

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return stats, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return stats, errors.New("csv file is empty or has only headers")
	}

	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"course", "lesson"} {
		if _, ok := headerIndex[col]; !ok {
			return stats, fmt.Errorf("missing column %q", col)
		}
	}

	log := logger.L()
	courses := make(map[string]*courseModels.Course)

	err = db.Transaction(func(tx *gorm.DB) error {
		for i, row := range records[1:] {
			courseTitle := getField(row, headerIndex, "course")
			lessonTitle := getField(row, headerIndex, "lesson")
			if courseTitle == "" || lessonTitle == "" {
				log.Warn("skipping row", "row", i+2)
				stats.Skipped++
				continue
			}

			course, ok := courses[courseTitle]
			if !ok {
				var created bool
				course, created, err = findOrCreateCourse(tx, courseTitle, row, headerIndex, publish)
				if err != nil {
					return err
				}
				if created {
					stats.CoursesCreated++
				}
				courses[courseTitle] = course
			}

			lesson := courseModels.Lesson{
				CourseID: course.ID,
				Title:    lessonTitle,
				VideoURL: getField(row, headerIndex, "video_url"),
				Duration: parseDuration(getField(row, headerIndex, "duration")),
			}

			var existing courseModels.Lesson
			res := tx.Where("course_id = ? AND title = ?", course.ID, lessonTitle).Limit(1).Find(&existing)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				existing.VideoURL = lesson.VideoURL
				existing.Duration = lesson.Duration
				if err := tx.Save(&existing).Error; err != nil {
					return fmt.Errorf("update lesson %q: %w", lessonTitle, err)
				}
				stats.LessonsUpdated++
				continue
			}

			var maxOrder int
			if err := tx.Model(&courseModels.Lesson{}).
				Where("course_id = ?", course.ID).
				Select("COALESCE(MAX(order_index), 0)").
				Scan(&maxOrder).Error; err != nil {
				return err
			}
			lesson.OrderIndex = maxOrder + 1
			if err := tx.Create(&lesson).Error; err != nil {
				return fmt.Errorf("create lesson %q: %w", lessonTitle, err)
			}
			stats.LessonsCreated++
		}
		return nil
	})
	return stats, err
}

func findOrCreateCourse(tx *gorm.DB, title string, row []string, headerIndex map[string]int, publish bool) (*courseModels.Course, bool, error) {
	var course courseModels.Course
	res := tx.Where("title = ?", title).Limit(1).Find(&course)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return &course, false, nil
	}

	course = courseModels.Course{
		Title:       title,
		Description: getField(row, headerIndex, "description"),
		Category:    getField(row, headerIndex, "category"),
		IsPublished: publish,
	}
	if err := tx.Create(&course).Error; err != nil {
		return nil, false, fmt.Errorf("create course %q: %w", title, err)
	}
	return &course, true, nil
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// parseDuration returns nil for blank or malformed minutes.
func parseDuration(s string) *int {
	if s == "" {
		return nil
	}
	val, err := strconv.Atoi(s)
	if err != nil || val < 0 {
		return nil
	}
	return &val
}
