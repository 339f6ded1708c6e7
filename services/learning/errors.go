package learning

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrCourseNotFound  = errors.New("course not found")
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrAttemptNotFound = errors.New("quiz attempt not found")

	// ErrLearnAccessDenied: no enrollment, or the enrollment is already COMPLETED.
	ErrLearnAccessDenied = errors.New("learn access denied")
	// ErrQuizLocked: the learner has not completed every lesson of the quiz's course.
	ErrQuizLocked = errors.New("quiz locked until all lessons are completed")

	// ErrDuplicate is returned by Store.CreateEnrollment when the pair already exists.
	ErrDuplicate = errors.New("duplicate record")
)
