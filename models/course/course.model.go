package course

import "gorm.io/gorm"

// Course represents a learning course made of ordered lessons
type Course struct {
	gorm.Model
	Title        string   `json:"title"`
	Description  string   `json:"description" gorm:"type:text"`
	Category     string   `json:"category" gorm:"index"`
	ThumbnailURL string   `json:"thumbnail_url"`
	IsPublished  bool     `json:"is_published" gorm:"default:false"`
	Lessons      []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
}
