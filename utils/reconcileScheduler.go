package utils

import (
	"context"
	"strings"
	"time"

	"learnhub/logger"
	"learnhub/services/learning"

	"github.com/robfig/cron/v3"
)

// InitializeReconcileScheduler runs completion reconciliation on the given cron schedule.
// An empty spec or "off" disables it and returns nil.
func InitializeReconcileScheduler(coord *learning.Coordinator, spec string) (*cron.Cron, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "off") {
		logger.L().Info("reconcile scheduler disabled")
		return nil, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() { RunReconcile(coord) }); err != nil {
		return nil, err
	}

	c.Start()
	logger.L().Info("reconcile scheduler started", "schedule", spec)
	return c, nil
}

// RunReconcile runs one reconciliation pass.
func RunReconcile(coord *learning.Coordinator) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := coord.ReconcileCompletions(ctx)
	if err != nil {
		logger.L().Error("reconcile failed", "completed", n, "error", err)
		return
	}
	logger.L().Info("reconcile finished", "completed", n)
}
