package learning

import (
	"context"
	"errors"
	"fmt"
	"time"

	courseModels "learnhub/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on a relational database through GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) CourseExists(ctx context.Context, courseID uint) (bool, error) {
	var n int64
	if err := s.conn(ctx).Model(&courseModels.Course{}).Where("id = ?", courseID).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count course: %w", err)
	}
	return n > 0, nil
}

func (s *GormStore) FindLesson(ctx context.Context, lessonID uint) (*courseModels.Lesson, error) {
	var lesson courseModels.Lesson
	if err := s.conn(ctx).Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find lesson: %w", err)
	}
	return &lesson, nil
}

func (s *GormStore) FindQuiz(ctx context.Context, quizID uint) (*QuizRef, error) {
	var row struct {
		QuizID   uint
		LessonID uint
		CourseID uint
		Title    string
	}
	err := s.conn(ctx).Table("quizzes").
		Select("quizzes.id AS quiz_id, quizzes.lesson_id, lessons.course_id, quizzes.title").
		Joins("JOIN lessons ON lessons.id = quizzes.lesson_id AND lessons.deleted_at IS NULL").
		Where("quizzes.id = ?", quizID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find quiz: %w", err)
	}
	return &QuizRef{QuizID: row.QuizID, LessonID: row.LessonID, CourseID: row.CourseID, Title: row.Title}, nil
}

func (s *GormStore) FindEnrollment(ctx context.Context, userID, courseID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	if err := s.conn(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &enrollment, nil
}

func (s *GormStore) CreateEnrollment(ctx context.Context, userID, courseID uint, status string) (*courseModels.Enrollment, error) {
	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   status,
	}
	res := s.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(&enrollment)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create enrollment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrDuplicate
	}
	return &enrollment, nil
}

func (s *GormStore) CompleteEnrollment(ctx context.Context, userID, courseID uint, completedAt time.Time) (bool, error) {
	res := s.conn(ctx).Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, courseModels.EnrollmentInProgress).
		Updates(map[string]interface{}{
			"status":       courseModels.EnrollmentCompleted,
			"completed_at": completedAt,
		})
	if res.Error != nil {
		return false, fmt.Errorf("complete enrollment: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) CountLessons(ctx context.Context, courseID uint) (int64, error) {
	var n int64
	if err := s.conn(ctx).Model(&courseModels.Lesson{}).Where("course_id = ?", courseID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}
	return n, nil
}

func (s *GormStore) completedProgress(ctx context.Context, userID, courseID uint) *gorm.DB {
	return s.conn(ctx).Model(&courseModels.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id AND lessons.deleted_at IS NULL").
		Where("lesson_progress.user_id = ? AND lesson_progress.completed = ? AND lessons.course_id = ?", userID, true, courseID)
}

func (s *GormStore) CountCompletedLessonProgress(ctx context.Context, userID, courseID uint) (int64, error) {
	var n int64
	if err := s.completedProgress(ctx, userID, courseID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count completed lessons: %w", err)
	}
	return n, nil
}

func (s *GormStore) CompletedLessonIDs(ctx context.Context, userID, courseID uint) ([]uint, error) {
	var ids []uint
	if err := s.completedProgress(ctx, userID, courseID).Pluck("lesson_progress.lesson_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list completed lessons: %w", err)
	}
	return ids, nil
}

func (s *GormStore) UpsertLessonProgress(ctx context.Context, userID, lessonID uint, completed bool, progress float64) error {
	row := courseModels.LessonProgress{
		UserID:    userID,
		LessonID:  lessonID,
		Completed: completed,
		Progress:  progress,
	}
	err := s.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "progress", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert lesson progress: %w", err)
	}
	return nil
}

func (s *GormStore) FindQuizQuestionsWithCorrectOptions(ctx context.Context, quizID uint) ([]QuestionKey, error) {
	var questions []courseModels.Question
	if err := s.conn(ctx).Where("quiz_id = ?", quizID).Order("order_index asc, id asc").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, nil
	}

	questionIDs := make([]uint, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	var correct []courseModels.QuestionOption
	if err := s.conn(ctx).
		Where("question_id IN ? AND is_correct = ?", questionIDs, true).
		Order("id asc").
		Find(&correct).Error; err != nil {
		return nil, fmt.Errorf("list correct options: %w", err)
	}

	// first correct option per question wins
	correctByQuestion := make(map[uint]uint, len(correct))
	for _, opt := range correct {
		if _, seen := correctByQuestion[opt.QuestionID]; !seen {
			correctByQuestion[opt.QuestionID] = opt.ID
		}
	}

	keys := make([]QuestionKey, len(questions))
	for i, q := range questions {
		keys[i] = QuestionKey{QuestionID: q.ID}
		if optID, ok := correctByQuestion[q.ID]; ok {
			id := optID
			keys[i].CorrectOptionID = &id
		}
	}
	return keys, nil
}

func (s *GormStore) CreateQuizAttempt(ctx context.Context, attempt *courseModels.QuizAttempt) error {
	if err := s.conn(ctx).Create(attempt).Error; err != nil {
		return fmt.Errorf("create quiz attempt: %w", err)
	}
	return nil
}

func (s *GormStore) FindAttempt(ctx context.Context, attemptID uint) (*courseModels.QuizAttempt, error) {
	var attempt courseModels.QuizAttempt
	if err := s.conn(ctx).Where("id = ?", attemptID).First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find quiz attempt: %w", err)
	}
	return &attempt, nil
}

func (s *GormStore) FindLatestPassedAttempt(ctx context.Context, userID, quizID uint) (*courseModels.QuizAttempt, error) {
	var attempt courseModels.QuizAttempt
	err := s.conn(ctx).
		Where("user_id = ? AND quiz_id = ? AND passed = ?", userID, quizID, true).
		Order("created_at desc, id desc").
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find latest passed attempt: %w", err)
	}
	return &attempt, nil
}

func (s *GormStore) FindLatestPassedAttemptForCourse(ctx context.Context, userID, courseID uint) (*courseModels.QuizAttempt, error) {
	var attempt courseModels.QuizAttempt
	err := s.conn(ctx).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Joins("JOIN lessons ON lessons.id = quizzes.lesson_id").
		Where("quiz_attempts.user_id = ? AND quiz_attempts.passed = ? AND lessons.course_id = ?", userID, true, courseID).
		Order("quiz_attempts.created_at desc, quiz_attempts.id desc").
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find latest passed attempt for course: %w", err)
	}
	return &attempt, nil
}

func (s *GormStore) ListReconcileCandidates(ctx context.Context) ([]ReconcileCandidate, error) {
	var rows []ReconcileCandidate
	err := s.conn(ctx).Table("enrollments").
		Select("enrollments.user_id, enrollments.course_id, MIN(quiz_attempts.id) AS attempt_id").
		Joins("JOIN lessons ON lessons.course_id = enrollments.course_id").
		Joins("JOIN quizzes ON quizzes.lesson_id = lessons.id").
		Joins("JOIN quiz_attempts ON quiz_attempts.quiz_id = quizzes.id AND quiz_attempts.user_id = enrollments.user_id").
		Where("enrollments.status = ? AND quiz_attempts.passed = ? AND quiz_attempts.created_at >= enrollments.created_at",
			courseModels.EnrollmentInProgress, true).
		Group("enrollments.user_id, enrollments.course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list reconcile candidates: %w", err)
	}
	return rows, nil
}
