package learning

import (
	"context"
	"time"

	courseModels "learnhub/models/course"
)

// QuizRef locates a quiz inside its lesson and course.
type QuizRef struct {
	QuizID   uint
	LessonID uint
	CourseID uint
	Title    string
}

// QuestionKey is a question of a quiz with its correct option, if one is configured.
type QuestionKey struct {
	QuestionID      uint
	CorrectOptionID *uint
}

// ReconcileCandidate is an IN_PROGRESS enrollment that already has a passing attempt
// recorded after it was created.
type ReconcileCandidate struct {
	UserID    uint
	CourseID  uint
	AttemptID uint
}

// Store is the persistence contract the progress state machine runs on.
// Lookups return (nil, nil) when the row does not exist.
type Store interface {
	CourseExists(ctx context.Context, courseID uint) (bool, error)
	FindLesson(ctx context.Context, lessonID uint) (*courseModels.Lesson, error)
	FindQuiz(ctx context.Context, quizID uint) (*QuizRef, error)

	FindEnrollment(ctx context.Context, userID, courseID uint) (*courseModels.Enrollment, error)
	// CreateEnrollment returns ErrDuplicate when the (user, course) pair already exists.
	CreateEnrollment(ctx context.Context, userID, courseID uint, status string) (*courseModels.Enrollment, error)
	// CompleteEnrollment moves an IN_PROGRESS enrollment to COMPLETED and reports whether a row changed.
	CompleteEnrollment(ctx context.Context, userID, courseID uint, completedAt time.Time) (bool, error)

	CountLessons(ctx context.Context, courseID uint) (int64, error)
	CountCompletedLessonProgress(ctx context.Context, userID, courseID uint) (int64, error)
	CompletedLessonIDs(ctx context.Context, userID, courseID uint) ([]uint, error)
	UpsertLessonProgress(ctx context.Context, userID, lessonID uint, completed bool, progress float64) error

	FindQuizQuestionsWithCorrectOptions(ctx context.Context, quizID uint) ([]QuestionKey, error)
	CreateQuizAttempt(ctx context.Context, attempt *courseModels.QuizAttempt) error
	FindAttempt(ctx context.Context, attemptID uint) (*courseModels.QuizAttempt, error)
	FindLatestPassedAttempt(ctx context.Context, userID, quizID uint) (*courseModels.QuizAttempt, error)
	FindLatestPassedAttemptForCourse(ctx context.Context, userID, courseID uint) (*courseModels.QuizAttempt, error)

	ListReconcileCandidates(ctx context.Context) ([]ReconcileCandidate, error)

	// Transaction runs fn against a Store bound to one database transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
