package services

import (
	"learnhub/logger"
	"learnhub/services/learning"
	"learnhub/utils"

	"gorm.io/gorm"
)

// Learning is the process-wide completion coordinator, set by Init.
var Learning *learning.Coordinator

// Init wires the learning core to the database and the notification emails.
func Init(db *gorm.DB, log *logger.Logger) {
	coord := learning.NewCoordinator(learning.NewGormStore(db), log)
	coord.OnEnrolled = utils.NotifyEnrolled
	coord.OnCompleted = utils.NotifyCompleted
	Learning = coord
}
