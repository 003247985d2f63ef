package database

import (
	"fmt"

	"github.com/fullstack/taskboard/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EnsureIndexes adds the secondary indexes used by the per-user task queries
func EnsureIndexes(db *gorm.DB, log *logrus.Logger) error {
	indexes := []struct {
		name    string
		columns string
	}{
		// statistics and status filters
		{"idx_tasks_user_status", "user_id, status"},
		// overdue / due-soon windows
		{"idx_tasks_due_date", "due_date"},
		// completed-in-range reports
		{"idx_tasks_completed_at", "completed_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(&models.Task{}, idx.name) {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON tasks (%s)", idx.name, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithField("index", idx.name).Infof("Created index on tasks(%s)", idx.columns)
	}

	return nil
}
