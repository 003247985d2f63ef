package mocks

import (
	"context"
	"time"

	"github.com/fullstack/taskboard/internal/models"
	"github.com/fullstack/taskboard/internal/repository"
	"github.com/stretchr/testify/mock"
)

type TaskRepository struct{ mock.Mock }

func (m *TaskRepository) Create(ctx context.Context, t *models.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	a := m.Called(ctx, id)
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).(*models.Task), a.Error(1)
}

func (m *TaskRepository) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	a := m.Called(ctx, id)
	return a.Bool(0), a.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, t *models.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TaskRepository) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TaskRepository) List(ctx context.Context, f repository.TaskFilter) ([]models.Task, error) {
	return tasks(m.Called(ctx, f))
}

func (m *TaskRepository) CountByUserAndStatus(ctx context.Context, userID uint64, status models.TaskStatus) (int64, error) {
	a := m.Called(ctx, userID, status)
	return a.Get(0).(int64), a.Error(1)
}

func (m *TaskRepository) ListOverdue(ctx context.Context, userID uint64, now time.Time) ([]models.Task, error) {
	return tasks(m.Called(ctx, userID, now))
}

func (m *TaskRepository) ListDueBetween(ctx context.Context, userID uint64, from, to time.Time) ([]models.Task, error) {
	return tasks(m.Called(ctx, userID, from, to))
}

func (m *TaskRepository) ListHighPriorityPending(ctx context.Context, userID uint64) ([]models.Task, error) {
	return tasks(m.Called(ctx, userID))
}

func (m *TaskRepository) ListCompletedBetween(ctx context.Context, userID uint64, from, to time.Time) ([]models.Task, error) {
	return tasks(m.Called(ctx, userID, from, to))
}

func tasks(a mock.Arguments) ([]models.Task, error) {
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).([]models.Task), a.Error(1)
}
