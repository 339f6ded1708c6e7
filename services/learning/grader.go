package learning

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	courseModels "learnhub/models/course"

	"gorm.io/datatypes"
)

// PassThreshold is the minimum percentage that passes a quiz.
const PassThreshold = 70

// passes reports whether score/total reaches PassThreshold percent, in integer arithmetic.
func passes(score, total int) bool {
	return total > 0 && 100*score >= PassThreshold*total
}

// Answers maps a question id to the selected option id.
type Answers map[uint]uint

// QuestionResult is the grading outcome of a single question.
type QuestionResult struct {
	QuestionID       uint  `json:"question_id"`
	SelectedOptionID *uint `json:"selected_option_id"`
	IsCorrect        bool  `json:"is_correct"`
}

type GradeResult struct {
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage float64          `json:"percentage"`
	Passed     bool             `json:"passed"`
	Results    []QuestionResult `json:"results"`
}

// Grade scores answers against the quiz's questions. Total is the number of questions, not of
// answers; unanswered questions and questions without a correct option count as wrong. An empty
// quiz scores 0% and never passes.
func Grade(questions []QuestionKey, answers Answers) GradeResult {
	res := GradeResult{
		Total:   len(questions),
		Results: make([]QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		qr := QuestionResult{QuestionID: q.QuestionID}
		if selected, ok := answers[q.QuestionID]; ok {
			sel := selected
			qr.SelectedOptionID = &sel
			if q.CorrectOptionID != nil && *q.CorrectOptionID == selected {
				qr.IsCorrect = true
				res.Score++
			}
		}
		res.Results = append(res.Results, qr)
	}

	if res.Total > 0 {
		res.Percentage = float64(100*res.Score) / float64(res.Total)
	}
	res.Passed = passes(res.Score, res.Total)
	return res
}

// Grader grades a submission and appends the attempt.
type Grader struct {
	store Store
}

func NewGrader(store Store) *Grader {
	return &Grader{store: store}
}

// GradeAndRecord grades answers for quizID and persists one new QuizAttempt created at `at`.
func (g *Grader) GradeAndRecord(ctx context.Context, userID, quizID uint, answers Answers, at time.Time) (*courseModels.QuizAttempt, GradeResult, error) {
	questions, err := g.store.FindQuizQuestionsWithCorrectOptions(ctx, quizID)
	if err != nil {
		return nil, GradeResult{}, err
	}

	res := Grade(questions, answers)

	snapshot, err := json.Marshal(res.Results)
	if err != nil {
		return nil, GradeResult{}, fmt.Errorf("encode results: %w", err)
	}

	attempt := &courseModels.QuizAttempt{
		UserID:     userID,
		QuizID:     quizID,
		Score:      res.Score,
		Total:      res.Total,
		Percentage: res.Percentage,
		Passed:     res.Passed,
		Results:    datatypes.JSON(snapshot),
		CreatedAt:  at,
	}
	if err := g.store.CreateQuizAttempt(ctx, attempt); err != nil {
		return nil, GradeResult{}, err
	}
	return attempt, res, nil
}
