package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// TaskStatuses lists every status in declaration order.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

var taskStatusDisplayNames = map[TaskStatus]string{
	TaskStatusPending:    "Pending",
	TaskStatusInProgress: "In Progress",
	TaskStatusCompleted:  "Completed",
	TaskStatusCancelled:  "Cancelled",
}

func (s TaskStatus) IsValid() bool {
	_, ok := taskStatusDisplayNames[s]
	return ok
}

func (s TaskStatus) DisplayName() string {
	return taskStatusDisplayNames[s]
}

// ParseTaskStatus converts s to a TaskStatus, rejecting unknown values.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: status %q", ErrUnknownEnumValue, s)
	}
	return status, nil
}

func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTaskStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

var taskPriorityDisplayNames = map[TaskPriority]string{
	TaskPriorityLow:    "Low",
	TaskPriorityMedium: "Medium",
	TaskPriorityHigh:   "High",
	TaskPriorityUrgent: "Urgent",
}

func (p TaskPriority) IsValid() bool {
	_, ok := taskPriorityDisplayNames[p]
	return ok
}

func (p TaskPriority) DisplayName() string {
	return taskPriorityDisplayNames[p]
}

// ParseTaskPriority converts s to a TaskPriority, rejecting unknown values.
func ParseTaskPriority(s string) (TaskPriority, error) {
	priority := TaskPriority(s)
	if !priority.IsValid() {
		return "", fmt.Errorf("%w: priority %q", ErrUnknownEnumValue, s)
	}
	return priority, nil
}

func (p *TaskPriority) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTaskPriority(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'PENDING';check:chk_tasks_status,status IN ('PENDING','IN_PROGRESS','COMPLETED','CANCELLED')" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'MEDIUM';check:chk_tasks_priority,priority IN ('LOW','MEDIUM','HIGH','URGENT')" json:"priority"`
	DueDate     *time.Time   `json:"dueDate"`
	CreatedAt   time.Time    `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime:false" json:"updatedAt"`
	CompletedAt *time.Time   `json:"completedAt"`
	UserID      uint64       `gorm:"not null" json:"userId"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
