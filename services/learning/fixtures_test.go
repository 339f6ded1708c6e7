package learning

import (
	"context"
	"testing"
	"time"

	"learnhub/database"
	"learnhub/logger"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// testClock hands out strictly increasing UTC timestamps a minute apart.
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Now().UTC().Truncate(time.Second).Add(time.Hour)}
}

func (c *testClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

type fixture struct {
	db     *gorm.DB
	store  *GormStore
	coord  *Coordinator
	clock  *testClock
	ctx    context.Context
	userID uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testDB(t)
	store := NewGormStore(db)
	clock := newTestClock()
	coord := NewCoordinator(store, logger.Nop())
	coord.Now = clock.Now

	f := &fixture{db: db, store: store, coord: coord, clock: clock, ctx: context.Background()}
	f.userID = f.seedUser(t, "learner@example.com")
	return f
}

func (f *fixture) seedUser(t *testing.T, email string) uint {
	t.Helper()
	u := models.User{Name: "Learner", Email: email, Password: "x", Role: models.RoleLearner}
	require.NoError(t, f.db.Create(&u).Error)
	return u.ID
}

type seededCourse struct {
	CourseID  uint
	LessonIDs []uint
	QuizID    uint
	Questions []uint
	// correct and wrong option per question, in question order
	Correct []uint
	Wrong   []uint
}

// seedCourse creates a course with `lessons` lessons; when questions > 0 the last lesson gets a
// quiz with that many two-option questions.
func (f *fixture) seedCourse(t *testing.T, lessons, questions int) seededCourse {
	t.Helper()

	c := courseModels.Course{Title: "Go Basics", IsPublished: true}
	require.NoError(t, f.db.Create(&c).Error)
	out := seededCourse{CourseID: c.ID}

	for i := 0; i < lessons; i++ {
		l := courseModels.Lesson{CourseID: c.ID, Title: "Lesson", VideoURL: "https://video", OrderIndex: i + 1}
		require.NoError(t, f.db.Create(&l).Error)
		out.LessonIDs = append(out.LessonIDs, l.ID)
	}

	if questions > 0 {
		require.NotEmpty(t, out.LessonIDs, "a quiz needs a lesson")
		q := courseModels.Quiz{LessonID: out.LessonIDs[len(out.LessonIDs)-1], Title: "Final"}
		for i := 0; i < questions; i++ {
			q.Questions = append(q.Questions, courseModels.Question{
				Text:       "Q",
				OrderIndex: i + 1,
				Options: []courseModels.QuestionOption{
					{Text: "right", IsCorrect: true, OrderIndex: 1},
					{Text: "wrong", OrderIndex: 2},
				},
			})
		}
		require.NoError(t, f.db.Create(&q).Error)
		out.QuizID = q.ID
		for _, question := range q.Questions {
			out.Questions = append(out.Questions, question.ID)
			out.Correct = append(out.Correct, question.Options[0].ID)
			out.Wrong = append(out.Wrong, question.Options[1].ID)
		}
	}
	return out
}

// answers answers the first `right` questions correctly and the rest wrongly.
func (s seededCourse) answers(right int) Answers {
	a := Answers{}
	for i, qid := range s.Questions {
		if i < right {
			a[qid] = s.Correct[i]
		} else {
			a[qid] = s.Wrong[i]
		}
	}
	return a
}

func (f *fixture) completeLessons(t *testing.T, lessonIDs ...uint) {
	t.Helper()
	for _, id := range lessonIDs {
		_, err := f.coord.MarkLessonComplete(f.ctx, f.userID, id)
		require.NoError(t, err)
	}
}

func (f *fixture) enrollment(t *testing.T, courseID uint) *courseModels.Enrollment {
	t.Helper()
	e, err := f.store.FindEnrollment(f.ctx, f.userID, courseID)
	require.NoError(t, err)
	return e
}
