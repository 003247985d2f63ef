package mocks

import (
	"context"

	"github.com/fullstack/taskboard/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	return user(m.Called(ctx, id))
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return user(m.Called(ctx, username))
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return user(m.Called(ctx, email))
}

func (m *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	a := m.Called(ctx, username)
	return a.Bool(0), a.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	a := m.Called(ctx, email)
	return a.Bool(0), a.Error(1)
}

func (m *UserRepository) ListActive(ctx context.Context) ([]models.User, error) {
	a := m.Called(ctx)
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).([]models.User), a.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func user(a mock.Arguments) (*models.User, error) {
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).(*models.User), a.Error(1)
}
