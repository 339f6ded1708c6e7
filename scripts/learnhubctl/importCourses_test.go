package main

import (
	"strings"
	"testing"

	"learnhub/database"
	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

const coursesCSV = `course,description,category,lesson,video_url,duration
Go Basics,Intro to Go,programming,Hello World,https://videos.example/1,10
Go Basics,,,Types,https://videos.example/2,abc
,,,Orphan,,
SQL 101,Queries,data,Select,https://videos.example/3,
`

func TestImportCoursesCreatesOrderedLessons(t *testing.T) {
	db := openTestDB(t)

	stats, err := importCourses(db, strings.NewReader(coursesCSV), true)
	require.NoError(t, err)
	assert.Equal(t, importStats{CoursesCreated: 2, LessonsCreated: 3, Skipped: 1}, stats)

	var course courseModels.Course
	require.NoError(t, db.Preload("Lessons").Where("title = ?", "Go Basics").First(&course).Error)
	assert.True(t, course.IsPublished)
	assert.Equal(t, "programming", course.Category)
	require.Len(t, course.Lessons, 2)

	byTitle := map[string]courseModels.Lesson{}
	for _, l := range course.Lessons {
		byTitle[l.Title] = l
	}
	assert.Equal(t, 1, byTitle["Hello World"].OrderIndex)
	assert.Equal(t, 2, byTitle["Types"].OrderIndex)
	require.NotNil(t, byTitle["Hello World"].Duration)
	assert.Equal(t, 10, *byTitle["Hello World"].Duration)
	assert.Nil(t, byTitle["Types"].Duration)
}

func TestImportCoursesUpdatesExistingLessons(t *testing.T) {
	db := openTestDB(t)

	_, err := importCourses(db, strings.NewReader(coursesCSV), false)
	require.NoError(t, err)

	again := "course,lesson,video_url\nGo Basics,Types,https://videos.example/new\n"
	stats, err := importCourses(db, strings.NewReader(again), false)
	require.NoError(t, err)
	assert.Equal(t, importStats{LessonsUpdated: 1}, stats)

	var lesson courseModels.Lesson
	require.NoError(t, db.Where("title = ?", "Types").First(&lesson).Error)
	assert.Equal(t, "https://videos.example/new", lesson.VideoURL)

	var count int64
	db.Model(&courseModels.Lesson{}).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestImportCoursesRejectsBadHeader(t *testing.T) {
	db := openTestDB(t)

	_, err := importCourses(db, strings.NewReader("title,video\nA,B\n"), false)
	assert.ErrorContains(t, err, "missing column")

	_, err = importCourses(db, strings.NewReader("course,lesson\n"), false)
	assert.Error(t, err)
}
