package mocks

import (
	"context"

	"github.com/fullstack/taskboard/internal/services"
	"github.com/stretchr/testify/mock"
)

type TaskGenerator struct{ mock.Mock }

func (m *TaskGenerator) GenerateTasksFromText(ctx context.Context, text string) ([]services.GeneratedTask, error) {
	a := m.Called(ctx, text)
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).([]services.GeneratedTask), a.Error(1)
}
