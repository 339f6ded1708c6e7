package learning

import (
	"context"
	"fmt"

	courseModels "learnhub/models/course"

	"github.com/google/uuid"
)

// certificateNamespace scopes certificate numbers to this application.
var certificateNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("learnhub/certificates"))

// Eligibility is derived on every request; no certificate state is stored.
type Eligibility struct {
	Eligible bool                      `json:"eligible"`
	Attempt  *courseModels.QuizAttempt `json:"attempt,omitempty"`
}

// AttemptID returns the source attempt id, or 0 when not eligible.
func (e Eligibility) AttemptID() uint {
	if e.Attempt == nil {
		return 0
	}
	return e.Attempt.ID
}

// GetCertificateEligibility: eligible iff at least one passing attempt exists; the certificate
// always comes from the most recent one.
func (c *Coordinator) GetCertificateEligibility(ctx context.Context, userID, quizID uint) (*Eligibility, error) {
	if userID == 0 || quizID == 0 {
		return nil, ErrInvalidInput
	}

	attempt, err := c.store.FindLatestPassedAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	return &Eligibility{Eligible: attempt != nil, Attempt: attempt}, nil
}

// GetCourseCertificateEligibility is the (user, course) form of GetCertificateEligibility.
func (c *Coordinator) GetCourseCertificateEligibility(ctx context.Context, userID, courseID uint) (*Eligibility, error) {
	if userID == 0 || courseID == 0 {
		return nil, ErrInvalidInput
	}

	attempt, err := c.store.FindLatestPassedAttemptForCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return &Eligibility{Eligible: attempt != nil, Attempt: attempt}, nil
}

// FindAttempt loads an attempt for the results view.
func (c *Coordinator) FindAttempt(ctx context.Context, attemptID uint) (*courseModels.QuizAttempt, error) {
	if attemptID == 0 {
		return nil, ErrInvalidInput
	}
	attempt, err := c.store.FindAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}
	return attempt, nil
}

// CertificateNumber is stable for a given attempt, so regenerating a certificate from the same
// attempt yields the same number.
func CertificateNumber(attempt *courseModels.QuizAttempt) string {
	id := uuid.NewSHA1(certificateNamespace, []byte(fmt.Sprintf("attempt:%d:user:%d", attempt.ID, attempt.UserID)))
	return "CERT-" + id.String()[:8] + "-" + fmt.Sprintf("%06d", attempt.ID)
}
