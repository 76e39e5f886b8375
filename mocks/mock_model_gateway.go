package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sanyascan/internal/port"
)

// MockModelGateway is a mock implementation of port.ModelGateway.
type MockModelGateway struct {
	mock.Mock
}

func (m *MockModelGateway) Generate(ctx context.Context, segments []port.PromptSegment) (string, error) {
	args := m.Called(ctx, segments)
	return args.String(0), args.Error(1)
}
