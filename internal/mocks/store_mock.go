package mocks

import (
	"context"

	"github.com/fullstack/taskboard/internal/repository"
	"github.com/stretchr/testify/mock"
)

// Store hands out the configured repository mocks. Transaction and ReadOnly
// run fn against the same Store.
type Store struct {
	mock.Mock
	UserRepo *UserRepository
	TaskRepo *TaskRepository
}

func NewStore() *Store {
	return &Store{UserRepo: &UserRepository{}, TaskRepo: &TaskRepository{}}
}

func (m *Store) Users() repository.UserRepository { return m.UserRepo }
func (m *Store) Tasks() repository.TaskRepository { return m.TaskRepo }

func (m *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(m)
}

func (m *Store) ReadOnly(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(m)
}
