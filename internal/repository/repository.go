package repository

import (
	"context"
	"time"

	"github.com/fullstack/taskboard/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned by Find* methods when no row matches.
var ErrNotFound = gorm.ErrRecordNotFound

// Store hands out repositories and scopes them to a unit of work.
type Store interface {
	Users() UserRepository
	Tasks() TaskRepository

	// Transaction runs fn inside a read-write transaction. Returning an error rolls back.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// ReadOnly runs fn inside a read-only transaction.
	ReadOnly(ctx context.Context, fn func(tx Store) error) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ListActive returns users with is_active = true
	ListActive(ctx context.Context) ([]models.User, error)

	// Update writes every column of user
	Update(ctx context.Context, user *models.User) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id uint64) (*models.Task, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
	Update(ctx context.Context, task *models.Task) error

	// Delete permanently removes a task
	Delete(ctx context.Context, id uint64) error

	// List retrieves a user's tasks with optional equality filters
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	CountByUserAndStatus(ctx context.Context, userID uint64, status models.TaskStatus) (int64, error)

	// ListOverdue returns tasks due strictly before now that are not COMPLETED
	ListOverdue(ctx context.Context, userID uint64, now time.Time) ([]models.Task, error)

	// ListDueBetween returns tasks due in [from, to] that are not COMPLETED
	ListDueBetween(ctx context.Context, userID uint64, from, to time.Time) ([]models.Task, error)

	// ListHighPriorityPending returns PENDING tasks with HIGH or URGENT priority,
	// most urgent first, then by due date
	ListHighPriorityPending(ctx context.Context, userID uint64) ([]models.Task, error)

	// ListCompletedBetween returns COMPLETED tasks with completed_at in [from, to]
	ListCompletedBetween(ctx context.Context, userID uint64, from, to time.Time) ([]models.Task, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID   uint64
	Status   *models.TaskStatus
	Priority *models.TaskPriority
}
