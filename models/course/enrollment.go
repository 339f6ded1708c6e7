package course

import "time"

const (
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"

	// NotEnrolled is the derived state of a (user, course) pair without an enrollment row.
	NotEnrolled = "NOT_ENROLLED"
)

// Enrollment tracks a user's lifecycle in a course. At most one row per (user, course).
type Enrollment struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;index;not null"`
	Status      string     `json:"status" gorm:"index;default:'IN_PROGRESS'"` // IN_PROGRESS, COMPLETED
	CreatedAt   time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Enrollment) TableName() string { return "enrollments" }

// LessonProgress records a user's completion of one lesson. At most one row per (user, lesson).
type LessonProgress struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	LessonID  uint      `json:"lesson_id" gorm:"uniqueIndex:idx_progress_user_lesson;index;not null"`
	Completed bool      `json:"completed" gorm:"default:false"`
	Progress  float64   `json:"progress" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }
