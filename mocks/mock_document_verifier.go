package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docverify/internal/port"
)

// MockDocumentVerifier is a mock implementation of port.DocumentVerifier.
type MockDocumentVerifier struct {
	mock.Mock
}

func (m *MockDocumentVerifier) Verify(ctx context.Context, input port.VerifyInput) string {
	args := m.Called(ctx, input)
	return args.String(0)
}
