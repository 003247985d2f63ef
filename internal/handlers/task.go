package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fullstack/taskboard/internal/dto"
	apierrors "github.com/fullstack/taskboard/internal/errors"
	"github.com/fullstack/taskboard/internal/middleware"
	"github.com/fullstack/taskboard/internal/models"
	"github.com/fullstack/taskboard/internal/services"
	"github.com/fullstack/taskboard/internal/utils"
	"github.com/gin-gonic/gin"
)

// TaskHandler serves the /api/tasks routes.
type TaskHandler struct {
	tasks *services.TaskService
	users *services.UserService
}

func NewTaskHandler(tasks *services.TaskService, users *services.UserService) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		users: users,
	}
}

// CreateTask creates a task for the user named in the body
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	owner, err := h.users.GetByID(ctx, req.UserID)
	if err != nil {
		respondError(c, err, "An error occurred while creating the task")
		return
	}
	if owner == nil {
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeNotFound, fmt.Sprintf("User not found with ID: %d", req.UserID))
		return
	}

	task, err := h.tasks.Create(ctx, &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		UserID:      owner.ID,
	})
	if err != nil {
		respondError(c, err, "An error occurred while creating the task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "An error occurred while retrieving the task")
		return
	}
	if task == nil {
		apierrors.NotFound(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask replaces the editable fields of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	existing, err := h.tasks.GetByID(ctx, id)
	if err != nil {
		respondError(c, err, "An error occurred while updating the task")
		return
	}
	if existing == nil {
		respondError(c, services.TaskNotFound(id), "")
		return
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.DueDate = req.DueDate
	if req.Priority != "" {
		existing.Priority = req.Priority
	}
	if req.Status != "" {
		existing.Status = req.Status
	}

	task, err := h.tasks.Update(ctx, *existing)
	if err != nil {
		respondError(c, err, "An error occurred while updating the task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.StatusUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err, "An error occurred while updating the task status")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask permanently deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "An error occurred while deleting the task")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

// The handlers below run behind middleware.ResolveUser.

func (h *TaskHandler) ListUserTasks(c *gin.Context) {
	owner := mustOwner(c)
	tasks, err := h.tasks.ListByUser(c.Request.Context(), owner.ID)
	h.respondList(c, tasks, err, "An error occurred while retrieving tasks")
}

func (h *TaskHandler) ListUserTasksByStatus(c *gin.Context) {
	status, err := models.ParseTaskStatus(c.Param("status"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid status: "+c.Param("status"))
		return
	}

	owner := mustOwner(c)
	tasks, err := h.tasks.ListByUserAndStatus(c.Request.Context(), owner.ID, status)
	h.respondList(c, tasks, err, "An error occurred while retrieving tasks")
}

func (h *TaskHandler) ListUserTasksByPriority(c *gin.Context) {
	priority, err := models.ParseTaskPriority(c.Param("priority"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid priority: "+c.Param("priority"))
		return
	}

	owner := mustOwner(c)
	tasks, err := h.tasks.ListByUserAndPriority(c.Request.Context(), owner.ID, priority)
	h.respondList(c, tasks, err, "An error occurred while retrieving tasks")
}

func (h *TaskHandler) ListOverdueTasks(c *gin.Context) {
	owner := mustOwner(c)
	tasks, err := h.tasks.ListOverdue(c.Request.Context(), owner.ID)
	h.respondList(c, tasks, err, "An error occurred while retrieving overdue tasks")
}

func (h *TaskHandler) ListTasksDueSoon(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil {
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidFormat, "Invalid number of days: "+c.Param("days"))
		return
	}

	owner := mustOwner(c)
	tasks, err := h.tasks.ListDueSoon(c.Request.Context(), owner.ID, days)
	h.respondList(c, tasks, err, "An error occurred while retrieving tasks due soon")
}

func (h *TaskHandler) ListHighPriorityTasks(c *gin.Context) {
	owner := mustOwner(c)
	tasks, err := h.tasks.ListHighPriorityPending(c.Request.Context(), owner.ID)
	h.respondList(c, tasks, err, "An error occurred while retrieving high priority tasks")
}

// ListCompletedTasks expects RFC3339 start and end query parameters
func (h *TaskHandler) ListCompletedTasks(c *gin.Context) {
	start, err := utils.ParseTime(c.Query("start"))
	if err != nil {
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidFormat, "start: "+err.Error())
		return
	}
	end, err := utils.ParseTime(c.Query("end"))
	if err != nil {
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidFormat, "end: "+err.Error())
		return
	}

	owner := mustOwner(c)
	tasks, err := h.tasks.ListCompletedInRange(c.Request.Context(), owner.ID, start, end)
	h.respondList(c, tasks, err, "An error occurred while retrieving completed tasks")
}

func (h *TaskHandler) GetTaskStatistics(c *gin.Context) {
	owner := mustOwner(c)
	stats, err := h.tasks.Statistics(c.Request.Context(), owner.ID)
	if err != nil {
		respondError(c, err, "An error occurred while retrieving task statistics")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskStatisticsDTO(*stats))
}

// GenerateTasks asks the AI service for task suggestions. Nothing is saved.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	var req dto.GenerateTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	tasks, err := h.tasks.GenerateTasks(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err, "Failed to generate tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToGeneratedTasksResponse(tasks))
}

func (h *TaskHandler) respondList(c *gin.Context, tasks []models.Task, err error, fallback string) {
	if err != nil {
		respondError(c, err, fallback)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

func mustOwner(c *gin.Context) *models.User {
	owner, ok := middleware.Owner(c)
	if !ok {
		panic("task owner route registered without middleware.ResolveUser")
	}
	return owner
}
