package learning

import (
	"context"
)

// ReconcileCompletions completes IN_PROGRESS enrollments that already have a passing attempt
// recorded after enrollment, e.g. when a completion write was lost. CompletedAt is taken from the
// earliest such attempt. Returns the number of enrollments completed.
func (c *Coordinator) ReconcileCompletions(ctx context.Context) (int, error) {
	candidates, err := c.store.ListReconcileCandidates(ctx)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, cand := range candidates {
		attempt, err := c.store.FindAttempt(ctx, cand.AttemptID)
		if err != nil {
			return fixed, err
		}
		if attempt == nil {
			continue
		}

		completed, err := c.store.CompleteEnrollment(ctx, cand.UserID, cand.CourseID, attempt.CreatedAt)
		if err != nil {
			return fixed, err
		}
		if !completed {
			continue
		}

		fixed++
		c.log.Warn("enrollment completed by reconciliation",
			"userId", cand.UserID, "courseId", cand.CourseID, "attemptId", cand.AttemptID)
		if c.OnCompleted != nil {
			c.OnCompleted(cand.UserID, cand.CourseID)
		}
	}
	return fixed, nil
}
