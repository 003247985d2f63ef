package repository

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/fullstack/taskboard/internal/database"
	"github.com/fullstack/taskboard/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(database.InMemoryDSN, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	require.NoError(t, database.Migrate(db, log))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func newUser(t *testing.T, repo UserRepository, username string) *models.User {
	t.Helper()
	now := time.Now().UTC()
	user := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hash",
		Role:      models.RoleUser,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func newTask(t *testing.T, repo TaskRepository, userID uint64, title string, status models.TaskStatus, priority models.TaskPriority) *models.Task {
	t.Helper()
	now := time.Now().UTC()
	task := &models.Task{
		Title:     title,
		Status:    status,
		Priority:  priority,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

func TestUserRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(setupDB(t))
	alice := newUser(t, users, "alice")

	found, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := users.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = users.ExistsByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.False(t, exists, "email uniqueness is case-sensitive")
}

func TestUserRepository_UniqueConstraint(t *testing.T) {
	users := NewUserRepository(setupDB(t))
	newUser(t, users, "alice")

	dup := &models.User{Username: "alice", Email: "other@example.com", Password: "hash", Role: models.RoleUser, IsActive: true}
	assert.Error(t, users.Create(context.Background(), dup))
}

func TestUserRepository_ListActive(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(setupDB(t))
	newUser(t, users, "alice")
	bob := newUser(t, users, "bob")

	bob.IsActive = false
	require.NoError(t, users.Update(ctx, bob))

	active, err := users.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "alice", active[0].Username)
}

func TestTaskRepository_CheckConstraints(t *testing.T) {
	db := setupDB(t)
	owner := newUser(t, NewUserRepository(db), "owner")

	task := &models.Task{Title: "bad", Status: "ARCHIVED", Priority: models.TaskPriorityLow, UserID: owner.ID}
	assert.Error(t, NewTaskRepository(db).Create(context.Background(), task))
}

func TestTaskRepository_RequiresExistingOwner(t *testing.T) {
	tasks := NewTaskRepository(setupDB(t))

	task := &models.Task{Title: "orphan", Status: models.TaskStatusPending, Priority: models.TaskPriorityLow, UserID: 404}
	assert.Error(t, tasks.Create(context.Background(), task))
}

func TestTaskRepository_CascadeOnUserDelete(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)

	owner := newUser(t, users, "owner")
	keeper := newUser(t, users, "keeper")
	newTask(t, tasks, owner.ID, "a", models.TaskStatusPending, models.TaskPriorityLow)
	newTask(t, tasks, owner.ID, "b", models.TaskStatusCompleted, models.TaskPriorityHigh)
	kept := newTask(t, tasks, keeper.ID, "c", models.TaskStatusPending, models.TaskPriorityLow)

	require.NoError(t, db.Delete(&models.User{}, owner.ID).Error)

	remaining, err := tasks.List(ctx, TaskFilter{UserID: owner.ID})
	require.NoError(t, err)
	assert.Empty(t, remaining)

	exists, err := tasks.ExistsByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTaskRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	owner := newUser(t, NewUserRepository(db), "owner")
	tasks := NewTaskRepository(db)

	newTask(t, tasks, owner.ID, "a", models.TaskStatusPending, models.TaskPriorityLow)
	newTask(t, tasks, owner.ID, "b", models.TaskStatusPending, models.TaskPriorityHigh)
	newTask(t, tasks, owner.ID, "c", models.TaskStatusCancelled, models.TaskPriorityHigh)

	status := models.TaskStatusPending
	priority := models.TaskPriorityHigh
	got, err := tasks.List(ctx, TaskFilter{UserID: owner.ID, Status: &status, Priority: &priority})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Title)

	n, err := tasks.CountByUserAndStatus(ctx, owner.ID, models.TaskStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	store := NewStore(db)

	err := store.Transaction(ctx, func(tx Store) error {
		newUser(t, tx.Users(), "ghost")
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	exists, err := store.Users().ExistsByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}
