package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"learnhub/config"
	"learnhub/database"
	"learnhub/logger"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testCourse struct {
	CourseID  uint
	LessonIDs []uint
	QuizID    uint
	// question id -> correct / wrong option id
	Correct map[uint]uint
	Wrong   map[uint]uint
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		AppEnv:      "test",
		JWTKey:      "test-secret",
		JWTTTLHours: 1,
		SaltRound:   bcrypt.MinCost,
		CorsOrigins: "*",
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	database.Database = database.DbInstance{Db: db}
	services.Init(db, logger.Nop())

	return setupApp(), db
}

func seedPublishedCourse(t *testing.T, db *gorm.DB, lessons, questions int) testCourse {
	t.Helper()

	course := courseModels.Course{Title: "Go Basics", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	tc := testCourse{CourseID: course.ID, Correct: map[uint]uint{}, Wrong: map[uint]uint{}}
	var last courseModels.Lesson
	for i := 1; i <= lessons; i++ {
		last = courseModels.Lesson{CourseID: course.ID, Title: fmt.Sprintf("Lesson %d", i), OrderIndex: i}
		require.NoError(t, db.Create(&last).Error)
		tc.LessonIDs = append(tc.LessonIDs, last.ID)
	}

	quiz := courseModels.Quiz{LessonID: last.ID, Title: "Final quiz"}
	for i := 1; i <= questions; i++ {
		quiz.Questions = append(quiz.Questions, courseModels.Question{
			Text:       fmt.Sprintf("Question %d", i),
			OrderIndex: i,
			Options: []courseModels.QuestionOption{
				{Text: "right", IsCorrect: true, OrderIndex: 1},
				{Text: "wrong", OrderIndex: 2},
			},
		})
	}
	require.NoError(t, db.Create(&quiz).Error)
	tc.QuizID = quiz.ID
	for _, q := range quiz.Questions {
		tc.Correct[q.ID] = q.Options[0].ID
		tc.Wrong[q.ID] = q.Options[1].ID
	}
	return tc
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func decode(t *testing.T, raw json.RawMessage) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func signupAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	status, _ := call(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name": "Ada Lovelace", "email": email, "password": "secret-pass",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, res := call(t, app, "POST", "/auth/login", "", fiber.Map{"email": email, "password": "secret-pass"})
	require.Equal(t, fiber.StatusOK, status)
	token, _ := decode(t, res.Data)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLearnerJourney(t *testing.T) {
	app, db := newTestApp(t)
	tc := seedPublishedCourse(t, db, 2, 2)
	token := signupAndLogin(t, app, "ada@example.com")
	quizPath := fmt.Sprintf("/quiz/%d", tc.QuizID)

	// locked before enrolling
	status, res := call(t, app, "GET", quizPath, token, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, decode(t, res.Data)["redirect"], "error=not_completed")

	status, _ = call(t, app, "POST", fmt.Sprintf("/course/%d/enroll", tc.CourseID), token, nil)
	assert.Equal(t, fiber.StatusCreated, status)
	status, _ = call(t, app, "POST", fmt.Sprintf("/course/%d/enroll", tc.CourseID), token, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, res = call(t, app, "POST", fmt.Sprintf("/lesson/%d/complete", tc.LessonIDs[0]), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, decode(t, res.Data)["quiz_unlocked"])

	status, res = call(t, app, "POST", fmt.Sprintf("/lesson/%d/complete", tc.LessonIDs[1]), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, decode(t, res.Data)["quiz_unlocked"])

	status, res = call(t, app, "GET", quizPath, token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, string(res.Data), "is_correct")

	status, res = call(t, app, "POST", quizPath+"/submit", token, fiber.Map{"answers": tc.Wrong})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, decode(t, res.Data)["passed"])

	status, res = call(t, app, "GET", fmt.Sprintf("/certificate/quiz/%d", tc.QuizID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, decode(t, res.Data)["eligible"])

	status, res = call(t, app, "POST", quizPath+"/submit", token, fiber.Map{"answers": tc.Correct})
	require.Equal(t, fiber.StatusOK, status)
	submitted := decode(t, res.Data)
	assert.Equal(t, true, submitted["passed"])
	assert.Equal(t, true, submitted["course_completed"])

	status, res = call(t, app, "GET", fmt.Sprintf("/certificate/quiz/%d", tc.QuizID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	cert := decode(t, res.Data)
	assert.Equal(t, true, cert["eligible"])
	assert.Equal(t, submitted["attempt_id"], cert["attempt_id"])

	// learn mode closes once completed
	status, res = call(t, app, "GET", fmt.Sprintf("/course/%d/learn", tc.CourseID), token, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, decode(t, res.Data)["redirect"], "error=not_enrolled")

	status, res = call(t, app, "GET", fmt.Sprintf("/course/%d/progress", tc.CourseID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, courseModels.EnrollmentCompleted, decode(t, res.Data)["status"])

	// no renderer configured, drawn in-process
	req := httptest.NewRequest("GET", fmt.Sprintf("/certificate/quiz/%d/image", tc.QuizID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestSubmitValidationAndOwnership(t *testing.T) {
	app, db := newTestApp(t)
	tc := seedPublishedCourse(t, db, 1, 1)
	ada := signupAndLogin(t, app, "ada@example.com")
	bob := signupAndLogin(t, app, "bob@example.com")
	quizPath := fmt.Sprintf("/quiz/%d", tc.QuizID)

	status, _ := call(t, app, "POST", quizPath+"/submit", ada, fiber.Map{})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	call(t, app, "POST", fmt.Sprintf("/course/%d/enroll", tc.CourseID), ada, nil)
	call(t, app, "POST", fmt.Sprintf("/lesson/%d/complete", tc.LessonIDs[0]), ada, nil)

	status, res := call(t, app, "POST", quizPath+"/submit", ada, fiber.Map{"answers": tc.Correct})
	require.Equal(t, fiber.StatusOK, status)
	attemptID := decode(t, res.Data)["attempt_id"]

	resultPath := fmt.Sprintf("/results/%v", attemptID)
	status, _ = call(t, app, "GET", resultPath, ada, nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = call(t, app, "GET", resultPath, bob, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// bob never unlocked the quiz
	status, _ = call(t, app, "POST", quizPath+"/submit", bob, fiber.Map{"answers": tc.Correct})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app, db := newTestApp(t)
	token := signupAndLogin(t, app, "ada@example.com")

	status, _ := call(t, app, "GET", "/admin/course/list", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = call(t, app, "GET", "/admin/course/list", token, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// role is read from the database, so promotion applies to the existing token
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "ada@example.com").Update("role", models.RoleAdmin).Error)

	status, res := call(t, app, "POST", "/admin/course/create", token, fiber.Map{
		"title": "Distributed Systems", "description": "Consensus and clocks", "category": "systems",
	})
	require.Equal(t, fiber.StatusCreated, status, res.Message)
	courseID := decode(t, res.Data)["ID"]

	status, res = call(t, app, "GET", "/admin/course/list", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, strings.Contains(string(res.Data), "Distributed Systems"))

	status, _ = call(t, app, "POST", fmt.Sprintf("/admin/course/%v/lesson", courseID), token, fiber.Map{
		"title": "Clocks", "video_url": "https://videos.example/clocks",
	})
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestAdminDashboardStats(t *testing.T) {
	app, db := newTestApp(t)
	tc := seedPublishedCourse(t, db, 1, 1)
	learner := signupAndLogin(t, app, "ada@example.com")
	admin := signupAndLogin(t, app, "root@example.com")
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "root@example.com").Update("role", models.RoleAdmin).Error)

	call(t, app, "POST", fmt.Sprintf("/course/%d/enroll", tc.CourseID), learner, nil)

	status, res := call(t, app, "GET", "/admin/dashboard/stats", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	stats := decode(t, res.Data)["stats"].(map[string]interface{})
	assert.EqualValues(t, 2, stats["total_users"])
	assert.EqualValues(t, 1, stats["total_courses"])
	assert.EqualValues(t, 1, stats["in_progress"])
	assert.EqualValues(t, 1, stats["enrolled_this_week"])
	assert.EqualValues(t, 0, stats["completed_enrollments"])
}

func userIDByEmail(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("email = ?", email).First(&user).Error)
	return user.ID
}

func promote(t *testing.T, db *gorm.DB, email string) {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", email).Update("role", models.RoleAdmin).Error)
}

func TestDeletedUserTokenIsRejected(t *testing.T) {
	app, db := newTestApp(t)
	tc := seedPublishedCourse(t, db, 1, 1)
	learner := signupAndLogin(t, app, "ada@example.com")
	admin := signupAndLogin(t, app, "root@example.com")
	promote(t, db, "root@example.com")

	status, _ := call(t, app, "DELETE", fmt.Sprintf("/admin/user/%d", userIDByEmail(t, db, "ada@example.com")), admin, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, app, "POST", fmt.Sprintf("/course/%d/enroll", tc.CourseID), learner, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, _ = call(t, app, "POST", fmt.Sprintf("/lesson/%d/complete", tc.LessonIDs[0]), learner, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, _ = call(t, app, "GET", "/auth/me", learner, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	var enrollments int64
	db.Model(&courseModels.Enrollment{}).Count(&enrollments)
	assert.Zero(t, enrollments)

	// public pages treat the token as anonymous
	status, _ = call(t, app, "GET", fmt.Sprintf("/course/%d", tc.CourseID), learner, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

type authoredQuiz struct {
	ID        uint `json:"id"`
	Questions []struct {
		ID      uint `json:"id"`
		Options []struct {
			ID        uint `json:"id"`
			IsCorrect bool `json:"is_correct"`
		} `json:"options"`
	} `json:"questions"`
}

func TestQuizAuthoringRequiresExactlyOneCorrectOption(t *testing.T) {
	app, db := newTestApp(t)
	tc := seedPublishedCourse(t, db, 1, 1)
	admin := signupAndLogin(t, app, "root@example.com")
	promote(t, db, "root@example.com")
	quizPath := fmt.Sprintf("/admin/lesson/%d/quiz", tc.LessonIDs[0])

	question := func(correct ...bool) fiber.Map {
		options := []fiber.Map{}
		for i, ok := range correct {
			options = append(options, fiber.Map{"text": fmt.Sprintf("option %d", i), "is_correct": ok})
		}
		return fiber.Map{"text": "Which one?", "options": options}
	}

	status, res := call(t, app, "PUT", quizPath, admin, fiber.Map{"title": "Final", "questions": []fiber.Map{question(true, true)}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "Exactly one option must be marked correct!", decode(t, res.Data)["questions[0].options"])

	status, _ = call(t, app, "PUT", quizPath, admin, fiber.Map{"title": "Final", "questions": []fiber.Map{question(false, false)}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = call(t, app, "PUT", quizPath, admin, fiber.Map{"title": "Final", "questions": []fiber.Map{question(true)}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, res = call(t, app, "PUT", quizPath, admin, fiber.Map{
		"title":     "Final",
		"questions": []fiber.Map{question(false, true, false), question(true, false)},
	})
	require.Equal(t, fiber.StatusOK, status)
	var quiz authoredQuiz
	require.NoError(t, json.Unmarshal(res.Data, &quiz))
	assert.Equal(t, tc.QuizID, quiz.ID)
	require.Len(t, quiz.Questions, 2)

	// the learner is graded against the authored answers
	learner := signupAndLogin(t, app, "ada@example.com")
	call(t, app, "POST", fmt.Sprintf("/course/%d/enroll", tc.CourseID), learner, nil)
	call(t, app, "POST", fmt.Sprintf("/lesson/%d/complete", tc.LessonIDs[0]), learner, nil)

	answers := map[uint]uint{}
	for _, q := range quiz.Questions {
		for _, o := range q.Options {
			if o.IsCorrect {
				answers[q.ID] = o.ID
			}
		}
	}
	status, res = call(t, app, "POST", fmt.Sprintf("/quiz/%d/submit", quiz.ID), learner, fiber.Map{"answers": answers})
	require.Equal(t, fiber.StatusOK, status)
	graded := decode(t, res.Data)
	assert.EqualValues(t, 2, graded["total"])
	assert.Equal(t, true, graded["passed"])
}

func TestReorderLessonsNeedsPermutation(t *testing.T) {
	app, db := newTestApp(t)
	tc := seedPublishedCourse(t, db, 3, 1)
	admin := signupAndLogin(t, app, "root@example.com")
	promote(t, db, "root@example.com")
	orderPath := fmt.Sprintf("/admin/course/%d/lessons/order", tc.CourseID)
	l := tc.LessonIDs

	status, _ := call(t, app, "PUT", orderPath, admin, fiber.Map{"lesson_ids": []uint{l[0], l[1]}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	status, _ = call(t, app, "PUT", orderPath, admin, fiber.Map{"lesson_ids": []uint{l[0], l[1], l[2] + 100}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	status, _ = call(t, app, "PUT", orderPath, admin, fiber.Map{"lesson_ids": []uint{l[0], l[0], l[1]}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = call(t, app, "PUT", orderPath, admin, fiber.Map{"lesson_ids": []uint{l[2], l[0], l[1]}})
	require.Equal(t, fiber.StatusOK, status)

	var lessons []courseModels.Lesson
	require.NoError(t, db.Where("course_id = ?", tc.CourseID).Order("order_index asc").Find(&lessons).Error)
	require.Len(t, lessons, 3)
	assert.Equal(t, []uint{l[2], l[0], l[1]}, []uint{lessons[0].ID, lessons[1].ID, lessons[2].ID})
	assert.Equal(t, []int{1, 2, 3}, []int{lessons[0].OrderIndex, lessons[1].OrderIndex, lessons[2].OrderIndex})
}

func TestDeletedEnrollmentReturnsLearnerToNotEnrolled(t *testing.T) {
	app, db := newTestApp(t)
	tc := seedPublishedCourse(t, db, 1, 1)
	learner := signupAndLogin(t, app, "ada@example.com")
	admin := signupAndLogin(t, app, "root@example.com")
	promote(t, db, "root@example.com")
	enrollPath := fmt.Sprintf("/course/%d/enroll", tc.CourseID)
	progressPath := fmt.Sprintf("/course/%d/progress", tc.CourseID)

	status, res := call(t, app, "POST", enrollPath, learner, nil)
	require.Equal(t, fiber.StatusCreated, status)
	enrollmentID := decode(t, res.Data)["id"]

	status, _ = call(t, app, "DELETE", fmt.Sprintf("/admin/enrollment/%v", enrollmentID), admin, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, res = call(t, app, "GET", progressPath, learner, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, courseModels.NotEnrolled, decode(t, res.Data)["status"])

	status, _ = call(t, app, "POST", enrollPath, learner, nil)
	assert.Equal(t, fiber.StatusCreated, status)

	status, _ = call(t, app, "DELETE", fmt.Sprintf("/admin/enrollment/%v", enrollmentID), admin, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAdminUserManagement(t *testing.T) {
	app, db := newTestApp(t)
	admin := signupAndLogin(t, app, "root@example.com")
	signupAndLogin(t, app, "ada@example.com")
	promote(t, db, "root@example.com")
	adminID := userIDByEmail(t, db, "root@example.com")
	adaID := userIDByEmail(t, db, "ada@example.com")

	status, _ := call(t, app, "PUT", fmt.Sprintf("/admin/user/%d/role", adminID), admin, fiber.Map{"role": models.RoleLearner})
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = call(t, app, "DELETE", fmt.Sprintf("/admin/user/%d", adminID), admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = call(t, app, "PUT", fmt.Sprintf("/admin/user/%d/role", adaID), admin, fiber.Map{"role": "OWNER"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	status, _ = call(t, app, "PUT", fmt.Sprintf("/admin/user/%d/role", adaID), admin, fiber.Map{"role": models.RoleAdmin})
	require.Equal(t, fiber.StatusOK, status)
	var ada models.User
	require.NoError(t, db.First(&ada, adaID).Error)
	assert.Equal(t, models.RoleAdmin, ada.Role)

	status, _ = call(t, app, "PUT", fmt.Sprintf("/admin/user/%d/password", adaID), admin, fiber.Map{"new_password": "12345"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	status, _ = call(t, app, "PUT", fmt.Sprintf("/admin/user/%d/password", adaID+100), admin, fiber.Map{"new_password": "brand-new"})
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = call(t, app, "PUT", fmt.Sprintf("/admin/user/%d/password", adaID), admin, fiber.Map{"new_password": "brand-new"})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, app, "POST", "/auth/login", "", fiber.Map{"email": "ada@example.com", "password": "secret-pass"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, _ = call(t, app, "POST", "/auth/login", "", fiber.Map{"email": "ada@example.com", "password": "brand-new"})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestHeroSlides(t *testing.T) {
	app, db := newTestApp(t)
	learner := signupAndLogin(t, app, "ada@example.com")
	admin := signupAndLogin(t, app, "root@example.com")
	promote(t, db, "root@example.com")

	status, _ := call(t, app, "POST", "/admin/hero-slides", learner, fiber.Map{"title": "x"})
	assert.Equal(t, fiber.StatusForbidden, status)
	status, _ = call(t, app, "POST", "/admin/hero-slides", admin, fiber.Map{"title": "No image"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	slide := func(title string, order int, active bool) uint {
		status, res := call(t, app, "POST", "/admin/hero-slides", admin, fiber.Map{
			"title": title, "image_url": "/uploads/" + title + ".png", "link_url": "/course/list",
			"order_index": order, "is_active": active,
		})
		require.Equal(t, fiber.StatusCreated, status, res.Message)
		id, _ := decode(t, res.Data)["ID"].(float64)
		return uint(id)
	}
	second := slide("second", 2, true)
	slide("first", 1, true)
	slide("hidden", 0, false)

	titles := func() []string {
		status, res := call(t, app, "GET", "/hero-slides", "", nil)
		require.Equal(t, fiber.StatusOK, status)
		var slides []models.HeroSlide
		require.NoError(t, json.Unmarshal(res.Data, &slides))
		out := []string{}
		for _, s := range slides {
			out = append(out, s.Title)
		}
		return out
	}
	assert.Equal(t, []string{"first", "second"}, titles())

	status, _ = call(t, app, "PUT", fmt.Sprintf("/admin/hero-slides/%d", second), admin, fiber.Map{"order_index": 0})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"second", "first"}, titles())

	status, res := call(t, app, "GET", "/admin/hero-slides?search=hid", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, decode(t, res.Data)["total"])

	status, _ = call(t, app, "DELETE", fmt.Sprintf("/admin/hero-slides/%d", second), admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"first"}, titles())
	status, _ = call(t, app, "GET", fmt.Sprintf("/admin/hero-slides/%d", second), admin, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCategories(t *testing.T) {
	app, db := newTestApp(t)
	admin := signupAndLogin(t, app, "root@example.com")
	promote(t, db, "root@example.com")

	for _, c := range []courseModels.Course{
		{Title: "Go Basics", Category: "programming", IsPublished: true},
		{Title: "Rust Basics", Category: "programming", IsPublished: true},
		{Title: "SQL 101", Category: "data science", IsPublished: true},
		{Title: "Draft", Category: "design"},
		{Title: "Uncategorised", IsPublished: true},
	} {
		course := c
		require.NoError(t, db.Create(&course).Error)
	}

	names := func(raw json.RawMessage) map[string]int64 {
		var rows []struct {
			Name        string `json:"name"`
			CourseCount int64  `json:"course_count"`
		}
		require.NoError(t, json.Unmarshal(raw, &rows))
		out := map[string]int64{}
		for _, r := range rows {
			out[r.Name] = r.CourseCount
		}
		return out
	}

	status, res := call(t, app, "GET", "/course/categories", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]int64{"programming": 2, "data science": 1}, names(res.Data))

	status, _ = call(t, app, "GET", "/admin/categories", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, res = call(t, app, "GET", "/admin/categories", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]int64{"programming": 2, "data science": 1, "design": 1}, names(res.Data))

	status, res = call(t, app, "GET", "/course/category/data%20science", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(res.Data), "SQL 101")
	assert.NotContains(t, string(res.Data), "Go Basics")

	status, res = call(t, app, "GET", "/course/category/design", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, string(res.Data), "Draft")
}
