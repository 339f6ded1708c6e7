package learning

import (
	"context"
	"time"

	"learnhub/logger"
	courseModels "learnhub/models/course"
)

// Coordinator drives a (user, course) pair through NOT_ENROLLED -> IN_PROGRESS -> COMPLETED.
// It is the only writer of COMPLETED.
type Coordinator struct {
	store Store
	log   *logger.Logger

	Now func() time.Time

	// Optional notification hooks, called after the change is committed.
	OnEnrolled  func(userID, courseID uint)
	OnCompleted func(userID, courseID uint)
}

func NewCoordinator(store Store, log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.Nop()
	}
	return &Coordinator{
		store: store,
		log:   log.With("component", "learning.coordinator"),
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

// SubmitResult is what a learner sees after submitting a quiz.
type SubmitResult struct {
	GradeResult
	AttemptID       uint      `json:"attempt_id"`
	CourseID        uint      `json:"course_id"`
	CourseCompleted bool      `json:"course_completed"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

func (c *Coordinator) Enroll(ctx context.Context, userID, courseID uint) (*EnrollResult, error) {
	res, err := NewEnrollmentManager(c.store).Enroll(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if res.Created {
		c.log.Info("user enrolled", "userId", userID, "courseId", courseID)
		if c.OnEnrolled != nil {
			c.OnEnrolled(userID, courseID)
		}
	}
	return res, nil
}

func (c *Coordinator) RequireLearnAccess(ctx context.Context, userID, courseID uint) (*courseModels.Enrollment, error) {
	return NewEnrollmentManager(c.store).RequireLearnAccess(ctx, userID, courseID)
}

// CourseState returns the derived state of the pair.
func (c *Coordinator) CourseState(ctx context.Context, userID, courseID uint) (string, error) {
	return NewEnrollmentManager(c.store).State(ctx, userID, courseID)
}

func (c *Coordinator) MarkLessonComplete(ctx context.Context, userID, lessonID uint) (*courseModels.Lesson, error) {
	lesson, err := NewTracker(c.store).MarkLessonComplete(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	c.log.Debug("lesson completed", "userId", userID, "lessonId", lessonID, "courseId", lesson.CourseID)
	return lesson, nil
}

func (c *Coordinator) Progress(ctx context.Context, userID, courseID uint) (CourseProgress, error) {
	return NewTracker(c.store).Progress(ctx, userID, courseID)
}

// IsQuizUnlocked is recomputed on every call; nothing about the gate is stored.
func (c *Coordinator) IsQuizUnlocked(ctx context.Context, userID, courseID uint) (bool, error) {
	if userID == 0 || courseID == 0 {
		return false, nil
	}
	return NewTracker(c.store).IsCourseCompletedByLessons(ctx, userID, courseID)
}

// QuizAccess resolves the quiz and applies the lesson gate.
func (c *Coordinator) QuizAccess(ctx context.Context, userID, quizID uint) (*QuizRef, error) {
	if userID == 0 || quizID == 0 {
		return nil, ErrInvalidInput
	}

	ref, err := c.store.FindQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, ErrQuizNotFound
	}

	unlocked, err := c.IsQuizUnlocked(ctx, userID, ref.CourseID)
	if err != nil {
		return ref, err
	}
	if !unlocked {
		return ref, ErrQuizLocked
	}
	return ref, nil
}

// SubmitQuiz grades a gated submission. The attempt and the IN_PROGRESS -> COMPLETED transition
// commit in one transaction. A passed attempt without a matching IN_PROGRESS enrollment is logged
// and the attempt is still kept.
func (c *Coordinator) SubmitQuiz(ctx context.Context, userID, quizID uint, answers Answers) (*SubmitResult, error) {
	if answers == nil {
		return nil, ErrInvalidInput
	}

	ref, err := c.QuizAccess(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	now := c.Now()
	out := &SubmitResult{CourseID: ref.CourseID, SubmittedAt: now}

	err = c.store.Transaction(ctx, func(tx Store) error {
		attempt, res, err := NewGrader(tx).GradeAndRecord(ctx, userID, quizID, answers, now)
		if err != nil {
			return err
		}
		out.GradeResult = res
		out.AttemptID = attempt.ID

		if !res.Passed {
			return nil
		}

		completed, err := tx.CompleteEnrollment(ctx, userID, ref.CourseID, now)
		if err != nil {
			return err
		}
		out.CourseCompleted = completed
		if completed {
			return nil
		}

		enrollment, err := tx.FindEnrollment(ctx, userID, ref.CourseID)
		if err != nil {
			return err
		}
		if enrollment == nil {
			c.log.Warn("passed attempt without enrollment",
				"userId", userID, "quizId", quizID, "courseId", ref.CourseID, "attemptId", attempt.ID)
		}
		return nil
	})
	if err != nil {
		c.log.Error("quiz submission failed", "userId", userID, "quizId", quizID, "error", err)
		return nil, err
	}

	c.log.Info("quiz graded",
		"userId", userID, "quizId", quizID, "attemptId", out.AttemptID,
		"score", out.Score, "total", out.Total, "passed", out.Passed)

	if out.CourseCompleted {
		c.log.Info("enrollment completed", "userId", userID, "courseId", ref.CourseID)
		if c.OnCompleted != nil {
			c.OnCompleted(userID, ref.CourseID)
		}
	}
	return out, nil
}
