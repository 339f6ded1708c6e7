package learning

import (
	"context"
	"fmt"

	courseModels "learnhub/models/course"
)

// CourseProgress is a learner's lesson completion inside one course.
type CourseProgress struct {
	TotalLessons       int64  `json:"total_lessons"`
	CompletedLessons   int64  `json:"completed_lessons"`
	CompletedLessonIDs []uint `json:"completed_lesson_ids"`
}

// AllCompleted is false for a course without lessons.
func (p CourseProgress) AllCompleted() bool {
	return p.TotalLessons > 0 && p.CompletedLessons == p.TotalLessons
}

// Tracker records per-lesson completion.
type Tracker struct {
	store Store
}

func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// MarkLessonComplete upserts a completed progress row for (user, lesson). Repeating it is a no-op
// in effect. It never touches the enrollment.
func (t *Tracker) MarkLessonComplete(ctx context.Context, userID, lessonID uint) (*courseModels.Lesson, error) {
	if userID == 0 || lessonID == 0 {
		return nil, ErrInvalidInput
	}

	lesson, err := t.store.FindLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	if err := t.store.UpsertLessonProgress(ctx, userID, lessonID, true, 1.0); err != nil {
		return nil, err
	}
	return lesson, nil
}

// IsCourseCompletedByLessons reports whether the course has at least one lesson and the user
// completed all of them.
func (t *Tracker) IsCourseCompletedByLessons(ctx context.Context, userID, courseID uint) (bool, error) {
	total, err := t.store.CountLessons(ctx, courseID)
	if err != nil {
		return false, err
	}
	if total == 0 {
		return false, nil
	}

	done, err := t.store.CountCompletedLessonProgress(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	return done == total, nil
}

// Progress returns counts plus the ids of the completed lessons.
func (t *Tracker) Progress(ctx context.Context, userID, courseID uint) (CourseProgress, error) {
	total, err := t.store.CountLessons(ctx, courseID)
	if err != nil {
		return CourseProgress{}, err
	}

	ids, err := t.store.CompletedLessonIDs(ctx, userID, courseID)
	if err != nil {
		return CourseProgress{}, fmt.Errorf("progress: %w", err)
	}
	if ids == nil {
		ids = []uint{}
	}

	return CourseProgress{
		TotalLessons:       total,
		CompletedLessons:   int64(len(ids)),
		CompletedLessonIDs: ids,
	}, nil
}
