package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docverify/internal/port"
)

// MockModelClient is a mock implementation of port.ModelClient.
type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) GenerateText(ctx context.Context, req port.ModelRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
