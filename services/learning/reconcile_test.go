package learning

import (
	"testing"
	"time"

	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileCompletesLostTransitions(t *testing.T) {
	f := newFixture(t)
	course := f.seedCourse(t, 1, 1)

	_, err := f.coord.Enroll(f.ctx, f.userID, course.CourseID)
	require.NoError(t, err)

	// a passing attempt recorded without the completion write
	passedAt := f.clock.Now()
	lost := courseModels.QuizAttempt{UserID: f.userID, QuizID: course.QuizID, Score: 1, Total: 1, Percentage: 100, Passed: true, CreatedAt: passedAt}
	require.NoError(t, f.db.Create(&lost).Error)
	require.NoError(t, f.db.Create(&courseModels.QuizAttempt{UserID: f.userID, QuizID: course.QuizID, Total: 1, CreatedAt: f.clock.Now()}).Error)

	var completed []uint
	f.coord.OnCompleted = func(userID, courseID uint) { completed = append(completed, courseID) }

	n, err := f.coord.ReconcileCompletions(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []uint{course.CourseID}, completed)

	e := f.enrollment(t, course.CourseID)
	assert.Equal(t, courseModels.EnrollmentCompleted, e.Status)
	require.NotNil(t, e.CompletedAt)
	assert.True(t, e.CompletedAt.Equal(passedAt))

	n, err = f.coord.ReconcileCompletions(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReconcileIgnoresAttemptsBeforeReEnrollment(t *testing.T) {
	f := newFixture(t)
	course := f.seedCourse(t, 1, 1)

	old := courseModels.QuizAttempt{UserID: f.userID, QuizID: course.QuizID, Score: 1, Total: 1, Percentage: 100, Passed: true, CreatedAt: time.Now().UTC().Add(-24 * time.Hour)}
	require.NoError(t, f.db.Create(&old).Error)

	_, err := f.coord.Enroll(f.ctx, f.userID, course.CourseID)
	require.NoError(t, err)

	n, err := f.coord.ReconcileCompletions(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, courseModels.EnrollmentInProgress, f.enrollment(t, course.CourseID).Status)
}
