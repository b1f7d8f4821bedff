package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docverify/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendRunSummary(ctx context.Context, toEmail string, summary port.RunSummary) error {
	args := m.Called(ctx, toEmail, summary)
	return args.Error(0)
}
