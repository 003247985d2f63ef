package dto

import (
	"time"

	"github.com/fullstack/taskboard/internal/models"
	"github.com/fullstack/taskboard/internal/services"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	StatusName   string              `json:"statusDisplayName"`
	Priority     models.TaskPriority `json:"priority"`
	PriorityName string              `json:"priorityDisplayName"`
	DueDate      *time.Time          `json:"dueDate"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	CompletedAt  *time.Time          `json:"completedAt"`
	UserID       uint64              `json:"userId"`
}

type CreateTaskRequest struct {
	UserID      uint64              `json:"userId" binding:"required"`
	Title       string              `json:"title" binding:"required,max=200"`
	Description string              `json:"description" binding:"max=1000"`
	Priority    models.TaskPriority `json:"priority" binding:"omitempty,enum"`
	DueDate     *time.Time          `json:"dueDate"`
}

// UpdateTaskRequest replaces the editable fields of a task. Omitted status
// and priority keep their stored values; an omitted dueDate clears it.
type UpdateTaskRequest struct {
	Title       string              `json:"title" binding:"required,max=200"`
	Description string              `json:"description" binding:"max=1000"`
	Status      models.TaskStatus   `json:"status" binding:"omitempty,enum"`
	Priority    models.TaskPriority `json:"priority" binding:"omitempty,enum"`
	DueDate     *time.Time          `json:"dueDate"`
}

type StatusUpdateRequest struct {
	Status models.TaskStatus `json:"status" binding:"required,enum"`
}

type GenerateTasksRequest struct {
	Text string `json:"text" binding:"required,max=5000"`
}

// TaskStatisticsDTO holds per-status task counts
type TaskStatisticsDTO struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}

type GeneratedTaskDTO struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
}

type GeneratedTasksResponse struct {
	Tasks []GeneratedTaskDTO `json:"tasks"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		StatusName:   task.Status.DisplayName(),
		Priority:     task.Priority,
		PriorityName: task.Priority.DisplayName(),
		DueDate:      task.DueDate,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
		CompletedAt:  task.CompletedAt,
		UserID:       task.UserID,
	}
}

func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}

func ToTaskStatisticsDTO(stats services.TaskStatistics) TaskStatisticsDTO {
	return TaskStatisticsDTO{
		Total:      stats.Total,
		Pending:    stats.Pending,
		InProgress: stats.InProgress,
		Completed:  stats.Completed,
		Cancelled:  stats.Cancelled,
	}
}

func ToGeneratedTasksResponse(tasks []services.GeneratedTask) GeneratedTasksResponse {
	out := make([]GeneratedTaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = GeneratedTaskDTO{
			Title:       t.Title,
			Description: t.Description,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
		}
	}
	return GeneratedTasksResponse{Tasks: out}
}
