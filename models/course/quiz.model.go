package course

import "time"

// Quiz belongs to exactly one lesson.
type Quiz struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	LessonID  uint       `json:"lesson_id" gorm:"uniqueIndex;not null"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Quiz) TableName() string { return "quizzes" }

// Question has exactly one correct option; enforced when the quiz is authored.
type Question struct {
	ID         uint             `json:"id" gorm:"primarykey"`
	QuizID     uint             `json:"quiz_id" gorm:"index;not null"`
	Text       string           `json:"text" gorm:"type:text"`
	OrderIndex int              `json:"order_index" gorm:"default:0"`
	Options    []QuestionOption `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (Question) TableName() string { return "questions" }

type QuestionOption struct {
	ID         uint   `json:"id" gorm:"primarykey"`
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
}

func (QuestionOption) TableName() string { return "question_options" }
