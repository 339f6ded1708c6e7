package course

import "gorm.io/gorm"

// Lesson is one video lesson of a course. OrderIndex is the explicit rank inside the course.
type Lesson struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	Duration   *int   `json:"duration"` // minutes
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	Quiz       *Quiz  `json:"quiz,omitempty" gorm:"foreignKey:LessonID"`
}
