package port

import "context"

// RunSummary describes the outcome of one verification run for notification.
type RunSummary struct {
	PersonName    string
	OverallStatus string
	Processed     int
	Passed        int
	Pendencies    int
}

// EmailSender defines the contract for run-completion notifications.
type EmailSender interface {
	SendRunSummary(ctx context.Context, toEmail string, summary RunSummary) error
}
