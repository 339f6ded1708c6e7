package course

import (
	"time"

	"gorm.io/datatypes"
)

// QuizAttempt is one immutable graded submission. Rows are only ever inserted.
type QuizAttempt struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	UserID     uint           `json:"user_id" gorm:"index:idx_attempt_user_quiz;not null"`
	QuizID     uint           `json:"quiz_id" gorm:"index:idx_attempt_user_quiz;not null"`
	Score      int            `json:"score"`
	Total      int            `json:"total"`
	Percentage float64        `json:"percentage"`
	Passed     bool           `json:"passed" gorm:"index"`
	Results    datatypes.JSON `json:"results"` // per-question snapshot
	CreatedAt  time.Time      `json:"created_at" gorm:"index"`
}

func (QuizAttempt) TableName() string { return "quiz_attempts" }
