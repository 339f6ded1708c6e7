package controllers

import (
	"testing"

	"learnhub/database"
	courseModels "learnhub/models/course"
	"learnhub/services/learning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func useTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	prev := database.Database
	t.Cleanup(func() { database.Database = prev })
	database.Database = database.DbInstance{Db: db}
	return db
}

func TestQuizCourseID(t *testing.T) {
	db := useTestDB(t)

	course := courseModels.Course{Title: "Go Basics"}
	require.NoError(t, db.Create(&course).Error)
	lesson := courseModels.Lesson{CourseID: course.ID, Title: "Intro", OrderIndex: 1}
	require.NoError(t, db.Create(&lesson).Error)
	quiz := courseModels.Quiz{LessonID: lesson.ID, Title: "Final"}
	require.NoError(t, db.Create(&quiz).Error)

	id, err := quizCourseID(quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, id)

	_, err = quizCourseID(quiz.ID + 100)
	assert.ErrorIs(t, err, learning.ErrQuizNotFound)
}

func TestQuizCourseIDReportsStoreFailure(t *testing.T) {
	db := useTestDB(t)
	require.NoError(t, db.Migrator().DropTable("lessons"))

	id, err := quizCourseID(1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, learning.ErrQuizNotFound)
	assert.Zero(t, id)
}
