package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fullstack/taskboard/internal/constants"
	"github.com/fullstack/taskboard/internal/models"
	"github.com/fullstack/taskboard/internal/repository"
)

// TaskService handles task business logic
type TaskService struct {
	store     repository.Store
	generator TaskGenerator
	now       Clock
}

// NewTaskService creates a new TaskService. generator may be nil, in which
// case GenerateTasks reports ErrAIServiceNotConfigured.
func NewTaskService(store repository.Store, generator TaskGenerator) *TaskService {
	return &TaskService{
		store:     store,
		generator: generator,
		now:       systemClock,
	}
}

// WithClock replaces the time source used for timestamps and time windows.
func (s *TaskService) WithClock(now Clock) *TaskService {
	s.now = now
	return s
}

// TaskStatistics holds per-status counts for one user.
type TaskStatistics struct {
	Total      int64
	Pending    int64
	InProgress int64
	Completed  int64
	Cancelled  int64
}

// Create stamps and persists task. The caller has already attached a valid owner.
func (s *TaskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := validateTask(task); err != nil {
		return nil, err
	}
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}

	task.DueDate = utcTime(task.DueDate)

	now := s.now()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == models.TaskStatusCompleted && task.CompletedAt == nil {
		task.CompletedAt = &now
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Tasks().Create(ctx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// GetByID returns nil, nil when no task has the id.
func (s *TaskService) GetByID(ctx context.Context, id uint64) (*models.Task, error) {
	return lookup(s.store.Tasks().FindByID(ctx, id))
}

func (s *TaskService) ListByUser(ctx context.Context, userID uint64) ([]models.Task, error) {
	return s.list(s.store.Tasks().List(ctx, repository.TaskFilter{UserID: userID}))
}

func (s *TaskService) ListByUserAndStatus(ctx context.Context, userID uint64, status models.TaskStatus) ([]models.Task, error) {
	return s.list(s.store.Tasks().List(ctx, repository.TaskFilter{UserID: userID, Status: &status}))
}

func (s *TaskService) ListByUserAndPriority(ctx context.Context, userID uint64, priority models.TaskPriority) ([]models.Task, error) {
	return s.list(s.store.Tasks().List(ctx, repository.TaskFilter{UserID: userID, Priority: &priority}))
}

// Update copies the editable fields of task onto the stored row. completedAt
// is stamped only when the task moves into COMPLETED from another status.
func (s *TaskService) Update(ctx context.Context, task models.Task) (*models.Task, error) {
	if err := validateTask(&task); err != nil {
		return nil, err
	}

	var stored *models.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		stored, err = findTask(ctx, tx, task.ID)
		if err != nil {
			return err
		}

		now := s.now()
		if task.Status == models.TaskStatusCompleted && stored.Status != models.TaskStatusCompleted {
			stored.CompletedAt = &now
		}

		stored.Title = task.Title
		stored.Description = task.Description
		if task.Status != "" {
			stored.Status = task.Status
		}
		if task.Priority != "" {
			stored.Priority = task.Priority
		}
		stored.DueDate = utcTime(task.DueDate)
		stored.UpdatedAt = now

		if err := tx.Tasks().Update(ctx, stored); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// UpdateStatus sets the status of task id. Moving to COMPLETED always
// re-stamps completedAt, even when the task was already completed.
func (s *TaskService) UpdateStatus(ctx context.Context, id uint64, status models.TaskStatus) (*models.Task, error) {
	if !status.IsValid() {
		return nil, invalid("Invalid status: %s", status)
	}

	var task *models.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		task, err = findTask(ctx, tx, id)
		if err != nil {
			return err
		}

		now := s.now()
		task.Status = status
		task.UpdatedAt = now
		if status == models.TaskStatusCompleted {
			task.CompletedAt = &now
		}

		if err := tx.Tasks().Update(ctx, task); err != nil {
			return fmt.Errorf("failed to update task status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Delete permanently removes task id. A missing task is reported without
// issuing a delete.
func (s *TaskService) Delete(ctx context.Context, id uint64) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		exists, err := tx.Tasks().ExistsByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to find task: %w", err)
		}
		if !exists {
			return TaskNotFound(id)
		}
		if err := tx.Tasks().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
}

// ListOverdue returns tasks past their due date that are not COMPLETED.
// CANCELLED tasks are included.
func (s *TaskService) ListOverdue(ctx context.Context, userID uint64) ([]models.Task, error) {
	return s.list(s.store.Tasks().ListOverdue(ctx, userID, s.now()))
}

// ListDueSoon returns incomplete tasks due within the next days days. A
// negative window is empty.
func (s *TaskService) ListDueSoon(ctx context.Context, userID uint64, days int) ([]models.Task, error) {
	now := s.now()
	return s.list(s.store.Tasks().ListDueBetween(ctx, userID, now, now.AddDate(0, 0, days)))
}

func (s *TaskService) ListHighPriorityPending(ctx context.Context, userID uint64) ([]models.Task, error) {
	return s.list(s.store.Tasks().ListHighPriorityPending(ctx, userID))
}

// ListCompletedInRange returns tasks completed within [start, end].
func (s *TaskService) ListCompletedInRange(ctx context.Context, userID uint64, start, end time.Time) ([]models.Task, error) {
	if end.Before(start) {
		return nil, invalid("End of range must not be before start")
	}
	return s.list(s.store.Tasks().ListCompletedBetween(ctx, userID, start.UTC(), end.UTC()))
}

// Statistics counts a user's tasks per status in one read-only transaction.
func (s *TaskService) Statistics(ctx context.Context, userID uint64) (*TaskStatistics, error) {
	stats := &TaskStatistics{}
	err := s.store.ReadOnly(ctx, func(tx repository.Store) error {
		counts := map[models.TaskStatus]*int64{
			models.TaskStatusPending:    &stats.Pending,
			models.TaskStatusInProgress: &stats.InProgress,
			models.TaskStatusCompleted:  &stats.Completed,
			models.TaskStatusCancelled:  &stats.Cancelled,
		}
		for _, status := range models.TaskStatuses {
			n, err := tx.Tasks().CountByUserAndStatus(ctx, userID, status)
			if err != nil {
				return fmt.Errorf("failed to count %s tasks: %w", status, err)
			}
			*counts[status] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	stats.Total = stats.Pending + stats.InProgress + stats.Completed + stats.Cancelled
	return stats, nil
}

// GenerateTasks uses AI to suggest tasks from free text. Nothing is persisted.
func (s *TaskService) GenerateTasks(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.generator == nil {
		return nil, ErrAIServiceNotConfigured
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("Text is required")
	}
	if len(text) > constants.MaxAIInputTextLength {
		return nil, invalid("Text must not exceed %d characters", constants.MaxAIInputTextLength)
	}

	aiTasks, err := s.generator.GenerateTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		return nil, invalid("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	cutoff := s.now().Add(-24 * time.Hour)
	for _, aiTask := range aiTasks {
		aiTask.Title = strings.TrimSpace(aiTask.Title)
		if aiTask.Title == "" {
			continue
		}
		aiTask.Title = truncateRunes(aiTask.Title, constants.MaxTaskTitleLength)

		if aiTask.DueDate != nil && aiTask.DueDate.Before(cutoff) {
			aiTask.DueDate = nil
		}
		if !aiTask.Priority.IsValid() {
			aiTask.Priority = models.TaskPriorityMedium
		}

		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}

func (s *TaskService) list(tasks []models.Task, err error) ([]models.Task, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func findTask(ctx context.Context, tx repository.Store, id uint64) (*models.Task, error) {
	task, err := tx.Tasks().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TaskNotFound(id)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func validateTask(task *models.Task) error {
	title := strings.TrimSpace(task.Title)
	switch {
	case title == "":
		return invalid("Title is required")
	case utf8.RuneCountInString(task.Title) > constants.MaxTaskTitleLength:
		return invalid("Title must not exceed %d characters", constants.MaxTaskTitleLength)
	case utf8.RuneCountInString(task.Description) > constants.MaxTaskDescLength:
		return invalid("Description must not exceed %d characters", constants.MaxTaskDescLength)
	case task.Status != "" && !task.Status.IsValid():
		return invalid("Invalid status: %s", task.Status)
	case task.Priority != "" && !task.Priority.IsValid():
		return invalid("Invalid priority: %s", task.Priority)
	}
	return nil
}

// utcTime returns t in UTC. SQLite stores times as text and compares them lexically.
func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
