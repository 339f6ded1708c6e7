package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleLearner = "LEARNER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	Name      string     `json:"name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Role      string     `json:"role" gorm:"default:'LEARNER'"` // LEARNER, ADMIN
	StudentID *string    `json:"student_id" gorm:"unique"`
	Faculty   string     `json:"faculty"`
	Program   string     `json:"program"`
	Major     string     `json:"major"`
	Year      int        `json:"year"`
	LastLogin *time.Time `json:"last_login"`
}

// IsValidRole reports whether role is one an administrator may assign.
func IsValidRole(role string) bool {
	return role == RoleLearner || role == RoleAdmin
}
