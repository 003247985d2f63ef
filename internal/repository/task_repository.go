package repository

import (
	"context"
	"time"

	"github.com/fullstack/taskboard/internal/database"
	"github.com/fullstack/taskboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update updates a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// Delete permanently deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}

// List retrieves tasks with filtering
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{}).Scopes(database.OwnedBy(filter.UserID))

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}

	return r.find(query.Order("tasks.id ASC"))
}

func (r *GormTaskRepository) CountByUserAndStatus(ctx context.Context, userID uint64, status models.TaskStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(database.OwnedBy(userID)).
		Where("tasks.status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *GormTaskRepository) ListOverdue(ctx context.Context, userID uint64, now time.Time) ([]models.Task, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(database.OwnedBy(userID), database.NotCompleted).
		Where("tasks.due_date < ?", now).
		Order("tasks.due_date ASC")
	return r.find(query)
}

func (r *GormTaskRepository) ListDueBetween(ctx context.Context, userID uint64, from, to time.Time) ([]models.Task, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(database.OwnedBy(userID), database.NotCompleted, database.DueBetween(from, to)).
		Order("tasks.due_date ASC")
	return r.find(query)
}

func (r *GormTaskRepository) ListHighPriorityPending(ctx context.Context, userID uint64) ([]models.Task, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(database.OwnedBy(userID)).
		Where("tasks.priority IN ?", []models.TaskPriority{models.TaskPriorityHigh, models.TaskPriorityUrgent}).
		Where("tasks.status = ?", models.TaskStatusPending).
		Order("CASE tasks.priority WHEN 'URGENT' THEN 0 ELSE 1 END").
		Order("CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC")
	return r.find(query)
}

func (r *GormTaskRepository) ListCompletedBetween(ctx context.Context, userID uint64, from, to time.Time) ([]models.Task, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(database.OwnedBy(userID)).
		Where("tasks.status = ?", models.TaskStatusCompleted).
		Where("tasks.completed_at >= ? AND tasks.completed_at <= ?", from, to).
		Order("tasks.completed_at ASC")
	return r.find(query)
}

func (r *GormTaskRepository) find(query *gorm.DB) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
