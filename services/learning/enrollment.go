package learning

import (
	"context"
	"errors"
	"fmt"

	courseModels "learnhub/models/course"
)

// EnrollResult is the outcome of Enroll. Created is false when the pair was already enrolled.
type EnrollResult struct {
	Enrollment *courseModels.Enrollment
	Created    bool
}

// EnrollmentManager owns the (user, course) enrollment record.
type EnrollmentManager struct {
	store Store
}

func NewEnrollmentManager(store Store) *EnrollmentManager {
	return &EnrollmentManager{store: store}
}

// Enroll creates an IN_PROGRESS enrollment, or returns the existing one unchanged.
// A uniqueness conflict from a concurrent request resolves to the existing row.
func (m *EnrollmentManager) Enroll(ctx context.Context, userID, courseID uint) (*EnrollResult, error) {
	if userID == 0 || courseID == 0 {
		return nil, ErrInvalidInput
	}

	exists, err := m.store.CourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	existing, err := m.store.FindEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &EnrollResult{Enrollment: existing}, nil
	}

	created, err := m.store.CreateEnrollment(ctx, userID, courseID, courseModels.EnrollmentInProgress)
	if err == nil {
		return &EnrollResult{Enrollment: created, Created: true}, nil
	}
	if !errors.Is(err, ErrDuplicate) {
		return nil, err
	}

	existing, err = m.store.FindEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("enrollment conflict for user %d course %d but no row found", userID, courseID)
	}
	return &EnrollResult{Enrollment: existing}, nil
}

// RequireLearnAccess grants learn mode only to an IN_PROGRESS enrollment.
func (m *EnrollmentManager) RequireLearnAccess(ctx context.Context, userID, courseID uint) (*courseModels.Enrollment, error) {
	if userID == 0 || courseID == 0 {
		return nil, ErrInvalidInput
	}

	enrollment, err := m.store.FindEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil || enrollment.Status != courseModels.EnrollmentInProgress {
		return nil, ErrLearnAccessDenied
	}
	return enrollment, nil
}

// State returns NOT_ENROLLED, IN_PROGRESS or COMPLETED for the pair.
func (m *EnrollmentManager) State(ctx context.Context, userID, courseID uint) (string, error) {
	enrollment, err := m.store.FindEnrollment(ctx, userID, courseID)
	if err != nil {
		return "", err
	}
	if enrollment == nil {
		return courseModels.NotEnrolled, nil
	}
	return enrollment.Status, nil
}
