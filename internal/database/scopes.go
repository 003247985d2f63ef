package database

import (
	"time"

	"github.com/fullstack/taskboard/internal/models"
	"gorm.io/gorm"
)

// OwnedBy restricts a task query to a single owner
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.user_id = ?", userID)
	}
}

// NotCompleted excludes COMPLETED tasks; CANCELLED tasks are kept.
func NotCompleted(db *gorm.DB) *gorm.DB {
	return db.Where("tasks.status <> ?", models.TaskStatusCompleted)
}

// DueBetween keeps tasks whose due date lies in [from, to].
func DueBetween(from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.due_date >= ? AND tasks.due_date <= ?", from, to)
	}
}
